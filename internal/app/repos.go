package app

import (
	"gorm.io/gorm"

	profilerepo "github.com/followai/followai-backend/internal/data/repos/profile"
	xprepo "github.com/followai/followai-backend/internal/data/repos/xp"
	"github.com/followai/followai-backend/internal/pkg/logger"
)

type Repos struct {
	Profile       profilerepo.ProfileRepo
	PortfolioItem profilerepo.PortfolioItemRepo
	XpEvent       xprepo.XpEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Profile:       profilerepo.NewProfileRepo(db, log),
		PortfolioItem: profilerepo.NewPortfolioItemRepo(db, log),
		XpEvent:       xprepo.NewXpEventRepo(db, log),
	}
}
