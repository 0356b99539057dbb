package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/medapp/internal/dbx"
	"github.com/dmitrijs2005/medapp/internal/server/repositories/appointments"
	"github.com/dmitrijs2005/medapp/internal/server/repositories/hospitals"
	"github.com/dmitrijs2005/medapp/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Appointments(db dbx.DBTX) appointments.Repository
	Hospitals(db dbx.DBTX) hospitals.Repository
}
