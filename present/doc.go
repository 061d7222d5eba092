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

// Package present turns a decoded backend error into the message shown to
// the operator, and decides whether the failure must be forwarded to the
// embedding host as a ForbiddenError notification.
//
// The rewrite rules are evaluated in a fixed order and the first match wins:
//
//  1. internal subscription and "SharedOffer is Disabled for your account";
//  2. "Partition key paths must contain only valid";
//  3. aborted requests.
//
// Presentation is total: every input produces a string. Ambient state (such
// as whether the subscription is internal) is passed in a Context and never
// read from globals.
package present
