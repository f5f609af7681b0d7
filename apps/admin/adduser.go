package main

import (
	"time"

	"github.com/google/uuid"

	"tveterp/core"
	"tveterp/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, email, tenantSlug, pwd string, isAdmin bool) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	var tenantID string
	if tenantSlug != "" {
		tnt, err := cli.tntSvc.GetBySlug(tenantSlug)
		if err != nil {
			return err
		}
		tenantID = tnt.ID
	}

	lookup := uname
	if lookup == "" {
		lookup = email
	}

	now := time.Now().UTC()
	usr, err := cli.usrRepo.GetUserByUsernameOrEmail(lookup)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			ID:        uuid.New().String(),
			Username:  uname,
			Email:     email,
			CreatedAt: now,
		}
	}
	usr.TenantID = tenantID
	if isAdmin {
		usr.Roles = user.AllRoles
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	usr.UpdatedAt = now

	if _, err := cli.usrRepo.GetUserByID(usr.ID); err == nil {
		isActive := true
		_, err = cli.usrRepo.UpdateUser(usr, &isActive)
		return err
	}
	usr.IsActive = true
	_, err = cli.usrRepo.CreateUser(usr)
	return err
}
