/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package area names the place in the product where a failure was handled.
//
// An Area is what telemetry and logs use to group failures, e.g.:
//
//   - "DeleteCollection"
//   - "GalleryUtils/downloadItem"
//   - "QueryEditor/Execute"
//
// The zero value ("") is allowed and means that the caller did not name an
// area. Handlers log it as-is.
package area
