package testutils

import (
	"context"
	"log"
	"time"

	"github.com/hooprank/hooprank/containers"
	"github.com/hooprank/hooprank/db"
	"github.com/hooprank/hooprank/model"
	"github.com/itbasis/go-clock"
)

var (
	NikolaJokic = &model.Player{
		ID:        "nikola-jokic",
		FirstName: "Nikola",
		LastName:  "Jokic",
		Position:  model.POS_C,
		Team:      model.TEAM_DEN,
		Height:    83,
		Weight:    284,
	}
	ShaiGilgeousAlexander = &model.Player{
		ID:        "shai-gilgeous-alexander",
		FirstName: "Shai",
		LastName:  "Gilgeous-Alexander",
		Position:  model.POS_PG,
		Team:      model.TEAM_OKC,
		Height:    78,
		Weight:    195,
	}
	LukaDoncic = &model.Player{
		ID:        "luka-doncic",
		FirstName: "Luka",
		LastName:  "Doncic",
		Position:  model.POS_PG,
		Team:      model.TEAM_LAL,
		Height:    78,
		Weight:    230,
	}
	VictorWembanyama = &model.Player{
		ID:        "victor-wembanyama",
		FirstName: "Victor",
		LastName:  "Wembanyama",
		Position:  model.POS_C,
		Team:      model.TEAM_SAS,
		Height:    88,
		Weight:    235,
	}
	DeAaronFox = &model.Player{
		ID:        "deaaron-fox",
		FirstName: "De'Aaron",
		LastName:  "Fox",
		Position:  model.POS_PG,
		Team:      model.TEAM_SAS,
		Height:    75,
		Weight:    185,
	}
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	if err := InsertTestPlayers(db); err != nil {
		log.Fatalf("error populating db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

func InsertTestPlayers(db db.DB) error {
	players := []*model.Player{
		NikolaJokic,
		ShaiGilgeousAlexander,
		LukaDoncic,
		VictorWembanyama,
		DeAaronFox,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, p := range players {
		err := db.SavePlayer(ctx, p)
		if err != nil {
			return err
		}
	}

	return nil
}
