package main

import (
	"fmt"

	"peergram/pkg/config"
	"peergram/pkg/database"
	"peergram/pkg/logger"
	"peergram/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := db.AutoMigrate(
		&models.Identity{},
		&models.Profile{},
		&models.FollowEdge{},
		&models.Resource{},
		&models.Permission{},
		&models.Role{},
		&models.RoleAssignment{},
	); err != nil {
		log.Error("Failed to migrate database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

// rolePermissions maps each reference role to the resource levels it grants.
var rolePermissions = map[string]map[string]models.AccessLevel{
	"USER": {
		"profile": models.LevelView,
		"post":    models.LevelWrite,
	},
	"MODERATOR": {
		"profile":    models.LevelFull,
		"post":       models.LevelFull,
		"moderation": models.LevelWrite,
	},
	"ADMIN": {
		"profile":    models.LevelFull,
		"post":       models.LevelFull,
		"moderation": models.LevelFull,
		"rbac":       models.LevelFull,
	},
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	resources, err := seedResources(db, log)
	if err != nil {
		return err
	}

	roles, err := seedRoles(db, resources, log)
	if err != nil {
		return err
	}

	return seedIdentities(db, roles, log)
}

func seedResources(db *gorm.DB, log *logger.Logger) (map[string]*models.Resource, error) {
	descriptions := map[string]string{
		"profile":    "identity profiles",
		"post":       "published content",
		"moderation": "moderation queue",
		"rbac":       "role and permission administration",
	}

	resources := make(map[string]*models.Resource, len(descriptions))
	for name, description := range descriptions {
		resource := &models.Resource{Name: name, Description: description}
		if err := db.Where(models.Resource{Name: name}).FirstOrCreate(resource).Error; err != nil {
			return nil, fmt.Errorf("failed to seed resource %s: %w", name, err)
		}
		resources[name] = resource
		log.Info("Resource ready: %s", name)
	}
	return resources, nil
}

func seedRoles(db *gorm.DB, resources map[string]*models.Resource, log *logger.Logger) (map[string]*models.Role, error) {
	roles := make(map[string]*models.Role, len(rolePermissions))

	for roleName, grants := range rolePermissions {
		role := &models.Role{Name: roleName}
		if err := db.Where(models.Role{Name: roleName}).FirstOrCreate(role).Error; err != nil {
			return nil, fmt.Errorf("failed to seed role %s: %w", roleName, err)
		}

		for resourceName, level := range grants {
			permission := &models.Permission{
				ResourceID: resources[resourceName].ID,
				Level:      level,
			}
			if err := db.Where(models.Permission{
				ResourceID: resources[resourceName].ID,
				Level:      level,
			}).FirstOrCreate(permission).Error; err != nil {
				return nil, fmt.Errorf("failed to seed permission %s:%s: %w", resourceName, level, err)
			}

			if err := db.Model(role).Association("Permissions").Append(permission); err != nil {
				return nil, fmt.Errorf("failed to grant %s %s:%s: %w", roleName, resourceName, level, err)
			}
		}

		roles[roleName] = role
		log.Info("Role ready: %s (%d grants)", roleName, len(grants))
	}
	return roles, nil
}

func seedIdentities(db *gorm.DB, roles map[string]*models.Role, log *logger.Logger) error {
	testIdentities := []struct {
		email     string
		username  string
		password  string
		role      string
		isAdmin   bool
		isPrivate bool
	}{
		{"alice@test.com", "alice_peer", "Password1!", "USER", false, false},
		{"bob@test.com", "bob_peer", "Password1!", "USER", false, true},
		{"carol@test.com", "carol_peer", "Password1!", "MODERATOR", false, false},
		{"dave@test.com", "dave_peer", "Password1!", "ADMIN", true, false},
	}

	identityIDs := make([]string, 0, len(testIdentities))

	for _, data := range testIdentities {
		var existing models.Identity
		result := db.Where("email = ? OR username = ?", data.email, data.username).First(&existing)
		if result.Error == nil {
			log.Info("Identity %s already exists, skipping", data.username)
			identityIDs = append(identityIDs, existing.ID)
			continue
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(data.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		identity := &models.Identity{
			Email:    data.email,
			Username: data.username,
			Password: string(hashedPassword),
			IsAdmin:  data.isAdmin,
			IsActive: true,
		}
		if err := db.Create(identity).Error; err != nil {
			log.Error("Failed to create identity %s: %v", data.username, err)
			continue
		}

		profile := &models.Profile{
			OwnerID:   identity.ID,
			Bio:       fmt.Sprintf("Hi, I am %s", data.username),
			IsPrivate: data.isPrivate,
		}
		if err := db.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create profile for %s: %w", data.username, err)
		}

		assignment := &models.RoleAssignment{
			IdentityID: identity.ID,
			RoleID:     roles[data.role].ID,
		}
		if err := db.Create(assignment).Error; err != nil {
			return fmt.Errorf("failed to assign %s to %s: %w", data.role, data.username, err)
		}

		log.Info("Created identity: %s (%s, role %s)", data.username, data.email, data.role)
		identityIDs = append(identityIDs, identity.ID)
	}

	// A small follow graph so private-profile visibility is exercisable
	// right after seeding: alice follows bob, bob and carol follow alice.
	follows := [][2]int{{0, 1}, {1, 0}, {2, 0}}
	for _, pair := range follows {
		if pair[0] >= len(identityIDs) || pair[1] >= len(identityIDs) {
			continue
		}
		edge := &models.FollowEdge{
			FollowerID:  identityIDs[pair[0]],
			FollowingID: identityIDs[pair[1]],
		}
		if err := db.Where(models.FollowEdge{
			FollowerID:  edge.FollowerID,
			FollowingID: edge.FollowingID,
		}).FirstOrCreate(edge).Error; err != nil {
			log.Error("Failed to create follow edge: %v", err)
		}
	}

	return nil
}
