package services

import (
	"go-dbds/config"
	"go-dbds/services/stress"
)

type Services struct {
	StressService *stress.StressService
}

func New(cfg *config.AppConfig) *Services {
	return &Services{
		StressService: stress.New(cfg.StressConfig),
	}
}
