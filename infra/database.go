// Package infra wires the external collaborators: the Postgres connection and
// the Redis-backed token revocation store.
package infra

import (
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	drawinfra "github.com/lottohq/lottery/infra/repository/draw"
	prizeinfra "github.com/lottohq/lottery/infra/repository/prize"
	ticketinfra "github.com/lottohq/lottery/infra/repository/ticket"
	userinfra "github.com/lottohq/lottery/infra/repository/user"
)

// NewDBConnection opens the Postgres connection and migrates the schema.
func NewDBConnection(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, errors.New("database URL is not set")
	}
	connection, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		return nil, err
	}
	err = connection.AutoMigrate(
		&userinfra.User{},
		&ticketinfra.LotteryTicket{},
		&prizeinfra.Prize{},
		&drawinfra.LotteryDraw{},
	)
	if err != nil {
		return nil, err
	}
	return connection, nil
}
