package main

import (
	"log"
	"os"

	"tveterp/apps/api/echo"
	"tveterp/core"
	"tveterp/core/nav"
	"tveterp/core/tenant"
	"tveterp/core/user"
	"tveterp/services/email"
	"tveterp/services/logger"
	"tveterp/storage/database/inmem"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	logger := logsvc.NewRollbarLogger(std, core.Conf)
	if core.Conf.Debug || core.Conf.TestMode {
		logger.Enable(false)
	}

	// set up DB & repos
	db := inmemdb.Open()
	usrRepo := inmemdb.NewUserRepository(db)
	tntRepo := inmemdb.NewTenantRepository(db)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	registry := nav.DefaultRegistry()
	usrSvc := user.NewService(usrRepo, mailSvc)
	tntSvc := tenant.NewService(registry, tntRepo, mailSvc)

	// set up validation
	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)
	tenant.RegisterValidators(validate, translator, registry)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:       core.Conf.Server.Addr,
			Registry:   registry,
			UserSvc:    usrSvc,
			TenantSvc:  tntSvc,
			Logger:     logger,
			Validate:   validate,
			Translator: translator,
		},
	)
	app.Start()
}
