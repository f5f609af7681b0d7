package main

import (
	"log"
	"os"

	"tveterp/core/nav"
	"tveterp/core/tenant"
	"tveterp/core/user"
	"tveterp/services/email"
	"tveterp/storage/database/inmem"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB & repos
	db := inmemdb.Open()
	usrRepo := inmemdb.NewUserRepository(db)
	tntRepo := inmemdb.NewTenantRepository(db)

	mailSvc := emailsvc.NewConsoleService()

	// start CLI
	cli := commandLine{
		usrRepo: usrRepo,
		tntSvc:  tenant.NewService(nav.DefaultRegistry(), tntRepo, mailSvc),
		usrSvc:  user.NewService(usrRepo, mailSvc),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
