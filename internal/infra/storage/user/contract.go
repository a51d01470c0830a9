package user

import (
	"github.com/evilazio/barbershop-booking/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
