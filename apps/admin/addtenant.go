package main

import (
	"strings"

	"tveterp/core"
	"tveterp/core/tenant"
)

// addTenant registers a new tenant; the welcome email goes out on success.
func (cli *commandLine) addTenant(name, slug, email, modules string) error {
	nt := tenant.NewTenant{
		Name:  core.CleanString(name),
		Slug:  core.CleanString(slug, true /* lower */),
		Email: core.CleanString(email, true /* lower */),
	}
	if modules != "" {
		for _, id := range strings.Split(modules, ",") {
			nt.Modules = append(nt.Modules, core.CleanString(id, true /* lower */))
		}
	}

	if err := cli.tntSvc.CheckSlugUniqueness(nt.Slug); err != nil {
		return err
	}
	_, err := cli.tntSvc.Register(nt)
	return err
}
