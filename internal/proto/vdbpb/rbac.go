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

package vdbpb

// CredentialRequest creates or updates a user. Passwords travel base64 encoded.
type CredentialRequest struct {
	Username    string `json:"username,omitempty"`
	OldPassword string `json:"oldPassword,omitempty"`
	NewPassword string `json:"newPassword,omitempty"`
	Password    string `json:"password,omitempty"`
}

type DeleteCredentialRequest struct {
	Username string `json:"username,omitempty"`
}

type ListCredUsersRequest struct{}

type ListCredUsersResponse struct {
	Status    *Status  `json:"status,omitempty"`
	Usernames []string `json:"usernames,omitempty"`
}

func (r *ListCredUsersResponse) GetStatus() *Status { return r.Status }

type UserEntity struct {
	Name string `json:"name,omitempty"`
}

type RoleEntity struct {
	Name string `json:"name,omitempty"`
}

type SelectUserRequest struct {
	User        *UserEntity `json:"user,omitempty"`
	IncludeRole bool        `json:"include_role_info,omitempty"`
}

type UserResult struct {
	User  *UserEntity   `json:"user,omitempty"`
	Roles []*RoleEntity `json:"roles,omitempty"`
}

type SelectUserResponse struct {
	Status  *Status       `json:"status,omitempty"`
	Results []*UserResult `json:"results,omitempty"`
}

func (r *SelectUserResponse) GetStatus() *Status { return r.Status }

type CreateRoleRequest struct {
	Entity *RoleEntity `json:"entity,omitempty"`
}

type DropRoleRequest struct {
	RoleName  string `json:"role_name,omitempty"`
	ForceDrop bool   `json:"force_drop,omitempty"`
}

type SelectRoleRequest struct {
	Role            *RoleEntity `json:"role,omitempty"`
	IncludeUserInfo bool        `json:"include_user_info,omitempty"`
}

type RoleResult struct {
	Role  *RoleEntity   `json:"role,omitempty"`
	Users []*UserEntity `json:"users,omitempty"`
}

type SelectRoleResponse struct {
	Status  *Status       `json:"status,omitempty"`
	Results []*RoleResult `json:"results,omitempty"`
}

func (r *SelectRoleResponse) GetStatus() *Status { return r.Status }

// Operation types of OperateUserRole and OperatePrivilege.
const (
	OperateAdd    int32 = 0
	OperateRemove int32 = 1
)

type OperateUserRoleRequest struct {
	Username string `json:"username,omitempty"`
	RoleName string `json:"role_name,omitempty"`
	Type     int32  `json:"type,omitempty"`
}

type ObjectEntity struct {
	Name string `json:"name,omitempty"`
}

type PrivilegeEntity struct {
	Name string `json:"name,omitempty"`
}

type GrantorEntity struct {
	User      *UserEntity      `json:"user,omitempty"`
	Privilege *PrivilegeEntity `json:"privilege,omitempty"`
}

type GrantEntity struct {
	Role       *RoleEntity    `json:"role,omitempty"`
	Object     *ObjectEntity  `json:"object,omitempty"`
	ObjectName string         `json:"object_name,omitempty"`
	Grantor    *GrantorEntity `json:"grantor,omitempty"`
	DbName     string         `json:"db_name,omitempty"`
}

type SelectGrantRequest struct {
	Entity *GrantEntity `json:"entity,omitempty"`
}

type SelectGrantResponse struct {
	Status   *Status        `json:"status,omitempty"`
	Entities []*GrantEntity `json:"entities,omitempty"`
}

func (r *SelectGrantResponse) GetStatus() *Status { return r.Status }

type OperatePrivilegeRequest struct {
	Entity *GrantEntity `json:"entity,omitempty"`
	Type   int32        `json:"type,omitempty"`
}
