package main

import (
	"log"
	"os"

	"github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/core/week"
	"github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/database"
)

func main() {
	conf, err := core.NewConfig()
	errAndDie(err)

	// set up logging
	std := log.New(os.Stdout, conf.AppName+" ", log.LstdFlags|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(database.Migrate(db.DB))

	// set up services
	studentSvc := student.NewService(database.NewStudentRepository(db))
	weekSvc := week.NewService(database.NewWeekRepository(db))
	userSvc := user.NewService(database.NewUserRepository(db))

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Conf:       conf,
			Logger:     logger,
			StudentSvc: studentSvc,
			WeekSvc:    weekSvc,
			UserSvc:    userSvc,
		},
	)
	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
