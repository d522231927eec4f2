package service

import (
	postgresrepo "posrelay/internal/repository/postgres"
	redisrepo "posrelay/internal/repository/redis"
	"posrelay/internal/service/floorplan"
	"posrelay/internal/service/orders"
)

type Services struct {
	FloorPlan *floorplan.Service
	Orders    *orders.Service
}

type Config struct {
	FloorPlan floorplan.Config
}

// Publisher is the broadcast side shared by the services.
type Publisher = floorplan.Publisher

func NewServices(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pub Publisher,
	cfg Config,
) *Services {
	return &Services{
		FloorPlan: floorplan.New(store.FloorPlan(), cache, pub, cfg.FloorPlan),
		Orders:    orders.New(store.Orders(), pub),
	}
}
