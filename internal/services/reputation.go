package services

import (
	"forskull/internal/models"
)

// Reputation levels, lowest to highest. The ladder is points-based; roles
// and the expert flag override it for display.
const (
	RankNovice      = "novice"
	RankLearner     = "learner"
	RankStudent     = "student"
	RankMaster      = "master"
	RankPhd         = "phd"
	RankDsc         = "dsc"
	RankAcademician = "academician"
	RankExpert      = "expert"
	RankAdmin       = "admin"
	RankBlocked     = "blocked"
)

// ReputationLevel maps a point balance onto the ladder. Total over all
// inputs; negative balances land on the lowest rung.
func ReputationLevel(points int) string {
	switch {
	case points >= 2000:
		return RankAcademician
	case points >= 1200:
		return RankDsc
	case points >= 700:
		return RankPhd
	case points >= 350:
		return RankMaster
	case points >= 150:
		return RankStudent
	case points >= 50:
		return RankLearner
	default:
		return RankNovice
	}
}

// DisplayRank is the label shown next to a user's name: admins and blocked
// users show their role, experts show the expert badge, everyone else shows
// the points ladder.
func DisplayRank(user *models.User) string {
	switch {
	case user.Role == models.RoleAdmin:
		return RankAdmin
	case user.Role == models.RoleBlocked:
		return RankBlocked
	case user.IsExpert || user.Role == models.RoleExpert:
		return RankExpert
	default:
		return ReputationLevel(user.Points)
	}
}
