package types

import "gastos/db"

type ServerAuth struct {
	AuthToken *db.AuthToken
	User      *db.User
}
