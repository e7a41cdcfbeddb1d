package database

import (
	"fmt"
	"log/slog"

	"github.com/xaabbigautam/Work-Tracker/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	Email      string
	Name       string
	Password   string
	Role       models.Role
	Department string
	Zone       string
}

var seedUsers = []seedUser{
	{Email: "subash@teamlead.com", Name: "Subash Rai", Password: "Subash@866", Role: models.RoleTeam, Department: "Landscaping", Zone: "Downtown"},
	{Email: "pawan@teamlead.com", Name: "Pawan Koirala", Password: "Pawan@592", Role: models.RoleTeam, Department: "Maintenance", Zone: "Areesh/Green Team/PODs Indoor"},
	{Email: "sujan@teamlead.com", Name: "Sujan Subedi", Password: "Sujan@576", Role: models.RoleTeam, Department: "Irrigation", Zone: "MUD IP"},
	{Email: "saroj@teamlead.com", Name: "Saroj Pokhrel", Password: "Saroj@511", Role: models.RoleTeam, Department: "VIP Services", Zone: "PODs/VIP/RC/gate 5"},
	{Email: "taraknath@teamlead.com", Name: "Taraknath Sharma", Password: "Tarak@593", Role: models.RoleTeam, Department: "Golf Course", Zone: "Golf Landscaping"},
	{Email: "ghadindra@teamlead.com", Name: "Ghadindra Chaulagain", Password: "Ghadin@570", Role: models.RoleTeam, Department: "Irrigation", Zone: "Irrigation MUD/IP/POD/GATE 5"},
	{Email: "shambhu@teamlead.com", Name: "Shambhu Kumar Sah", Password: "Shambhu@506", Role: models.RoleTeam, Department: "Irrigation", Zone: "Irrigation Areesh/Downtown"},
	{Email: "sunil@teamlead.com", Name: "Sunil Kumar Sah Sudi", Password: "Sunil@583", Role: models.RoleTeam, Department: "Irrigation", Zone: "Palm Trees"},
	{Email: "admin@landscape.com", Name: "System Admin", Password: "Landscape@2025", Role: models.RoleAdmin},
	{Email: "victor@landscape.com", Name: "Victor AM", Password: "Vic123", Role: models.RoleAdmin},
	{Email: "james@landscape.com", Name: "James Manager", Password: "Manager2025", Role: models.RoleAdmin},
	{Email: "mike@landscape.com", Name: "Mike AM", Password: "Michael123", Role: models.RoleAdmin},
	{Email: "chhabi@landscape.com", Name: "Chhabi Admin", Password: "Admin@2025", Role: models.RoleSystemAdmin},
}

// SeedUsers inserts the hardcoded accounts, skipping any email that already
// exists. Safe to run on every startup.
func SeedUsers(db *gorm.DB) error {
	created := 0
	for _, u := range seedUsers {
		var existing models.User
		if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.Email, err)
		}

		user := models.User{
			Email:       u.Email,
			Name:        u.Name,
			Password:    string(hash),
			Role:        u.Role,
			Department:  u.Department,
			Zone:        u.Zone,
			IsActive:    true,
			IsHardcoded: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
		created++
	}

	if created > 0 {
		slog.Info("seeded hardcoded users", "count", created)
	}
	return nil
}
