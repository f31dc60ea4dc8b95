// Copyright 2025 The Vearch Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package entity

// UserDesc describes a user and the roles granted to it.
type UserDesc struct {
	Name  string
	Roles []string
}

// GrantItem is one privilege held by a role.
type GrantItem struct {
	ObjectType string
	ObjectName string
	RoleName   string
	Grantor    string
	Privilege  string
	DBName     string
}

// RoleDesc describes a role and its privileges.
type RoleDesc struct {
	Name   string
	Grants []GrantItem
}
