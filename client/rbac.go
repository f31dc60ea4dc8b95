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


package client

import (
	"context"
	"encoding/base64"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/pipeline"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
)

func encodePassword(pwd string) string {
	return base64.StdEncoding.EncodeToString([]byte(pwd))
}

func (c *Client) CreateUser(ctx context.Context, username, password string) error {
	validate := func() error {
		if err := requireName("user", username); err != nil {
			return err
		}
		if password == "" {
			return fault.New(fault.InvalidArgument, "password is empty")
		}
		return nil
	}
	return c.exec(ctx, vdbpb.MethodCreateCredential, validate, &vdbpb.CredentialRequest{
		Username: username,
		Password: encodePassword(password),
	})
}

func (c *Client) UpdatePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	validate := func() error {
		if err := requireName("user", username); err != nil {
			return err
		}
		if newPassword == "" {
			return fault.New(fault.InvalidArgument, "new password is empty")
		}
		return nil
	}
	return c.exec(ctx, vdbpb.MethodUpdateCredential, validate, &vdbpb.CredentialRequest{
		Username:    username,
		OldPassword: encodePassword(oldPassword),
		NewPassword: encodePassword(newPassword),
	})
}

func (c *Client) DropUser(ctx context.Context, username string) error {
	return c.exec(ctx, vdbpb.MethodDeleteCredential, func() error { return requireName("user", username) }, &vdbpb.DeleteCredentialRequest{Username: username})
}

func (c *Client) ListUsers(ctx context.Context) ([]string, error) {
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.ListCredUsersRequest, *vdbpb.ListCredUsersResponse]{
		Method: vdbpb.MethodListCredUsers,
		Build:  func() (*vdbpb.ListCredUsersRequest, error) { return &vdbpb.ListCredUsersRequest{}, nil },
	})
	if err != nil {
		return nil, err
	}
	return resp.Usernames, nil
}

// DescribeUser returns the user with the roles granted to it.
func (c *Client) DescribeUser(ctx context.Context, username string) (*entity.UserDesc, error) {
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.SelectUserRequest, *vdbpb.SelectUserResponse]{
		Method:   vdbpb.MethodSelectUser,
		Validate: func() error { return requireName("user", username) },
		Build: func() (*vdbpb.SelectUserRequest, error) {
			return &vdbpb.SelectUserRequest{User: &vdbpb.UserEntity{Name: username}, IncludeRole: true}, nil
		},
	})
	if err != nil {
		return nil, err
	}
	desc := &entity.UserDesc{Name: username}
	for _, r := range resp.Results {
		if r == nil {
			continue
		}
		for _, role := range r.Roles {
			if role != nil {
				desc.Roles = append(desc.Roles, role.Name)
			}
		}
	}
	return desc, nil
}

func (c *Client) CreateRole(ctx context.Context, role string) error {
	return c.exec(ctx, vdbpb.MethodCreateRole, func() error { return requireName("role", role) }, &vdbpb.CreateRoleRequest{Entity: &vdbpb.RoleEntity{Name: role}})
}

// DropRole drops a role; force drops it even when privileges are granted.
func (c *Client) DropRole(ctx context.Context, role string, force bool) error {
	return c.exec(ctx, vdbpb.MethodDropRole, func() error { return requireName("role", role) }, &vdbpb.DropRoleRequest{RoleName: role, ForceDrop: force})
}

func (c *Client) ListRoles(ctx context.Context) ([]string, error) {
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.SelectRoleRequest, *vdbpb.SelectRoleResponse]{
		Method: vdbpb.MethodSelectRole,
		Build:  func() (*vdbpb.SelectRoleRequest, error) { return &vdbpb.SelectRoleRequest{}, nil },
	})
	if err != nil {
		return nil, err
	}
	roles := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r != nil && r.Role != nil {
			roles = append(roles, r.Role.Name)
		}
	}
	return roles, nil
}

// DescribeRole returns the privileges granted to a role.
func (c *Client) DescribeRole(ctx context.Context, role string) (*entity.RoleDesc, error) {
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.SelectGrantRequest, *vdbpb.SelectGrantResponse]{
		Method:   vdbpb.MethodSelectGrant,
		Validate: func() error { return requireName("role", role) },
		Build: func() (*vdbpb.SelectGrantRequest, error) {
			return &vdbpb.SelectGrantRequest{Entity: &vdbpb.GrantEntity{Role: &vdbpb.RoleEntity{Name: role}}}, nil
		},
	})
	if err != nil {
		return nil, err
	}
	desc := &entity.RoleDesc{Name: role}
	for _, g := range resp.Entities {
		if g == nil {
			continue
		}
		item := entity.GrantItem{ObjectName: g.ObjectName, RoleName: role, DBName: g.DbName}
		if g.Object != nil {
			item.ObjectType = g.Object.Name
		}
		if g.Grantor != nil {
			if g.Grantor.User != nil {
				item.Grantor = g.Grantor.User.Name
			}
			if g.Grantor.Privilege != nil {
				item.Privilege = g.Grantor.Privilege.Name
			}
		}
		desc.Grants = append(desc.Grants, item)
	}
	return desc, nil
}

func (c *Client) GrantRole(ctx context.Context, username, role string) error {
	return c.operateUserRole(ctx, username, role, vdbpb.OperateAdd)
}

func (c *Client) RevokeRole(ctx context.Context, username, role string) error {
	return c.operateUserRole(ctx, username, role, vdbpb.OperateRemove)
}

func (c *Client) operateUserRole(ctx context.Context, username, role string, op int32) error {
	validate := func() error {
		if err := requireName("user", username); err != nil {
			return err
		}
		if err := requireName("role", role); err != nil {
			return err
		}
		return nil
	}
	return c.exec(ctx, vdbpb.MethodOperateUserRole, validate, &vdbpb.OperateUserRoleRequest{Username: username, RoleName: role, Type: op})
}

// GrantPrivilege grants privilege on the object to role, within the
// current database unless WithDB says otherwise.
func (c *Client) GrantPrivilege(ctx context.Context, role, objectType, objectName, privilege string, opts ...CallOption) error {
	return c.operatePrivilege(ctx, role, objectType, objectName, privilege, vdbpb.OperateAdd, opts)
}

func (c *Client) RevokePrivilege(ctx context.Context, role, objectType, objectName, privilege string, opts ...CallOption) error {
	return c.operatePrivilege(ctx, role, objectType, objectName, privilege, vdbpb.OperateRemove, opts)
}

func (c *Client) operatePrivilege(ctx context.Context, role, objectType, objectName, privilege string, op int32, opts []CallOption) error {
	o := c.callOptions(opts)
	validate := func() error {
		if err := requireName("role", role); err != nil {
			return err
		}
		if objectType == "" || objectName == "" || privilege == "" {
			return fault.New(fault.InvalidArgument, "object type, object name and privilege are required")
		}
		return nil
	}
	return c.exec(ctx, vdbpb.MethodOperatePrivilege, validate, &vdbpb.OperatePrivilegeRequest{
		Entity: &vdbpb.GrantEntity{
			Role:       &vdbpb.RoleEntity{Name: role},
			Object:     &vdbpb.ObjectEntity{Name: objectType},
			ObjectName: objectName,
			Grantor:    &vdbpb.GrantorEntity{Privilege: &vdbpb.PrivilegeEntity{Name: privilege}},
			DbName:     o.db,
		},
		Type: op,
	})
}
