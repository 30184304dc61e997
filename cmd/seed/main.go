// Command seed loads the demo data set: two known users and the products
// from static/products.json. It is idempotent and only writes into empty
// tables, so it is safe to run on every deploy.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"catalog/internal/config"
	"catalog/internal/crypto"
	"catalog/internal/models"
	"catalog/internal/repository"
)

type seedProduct struct {
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

type seedUser struct {
	username string
	password string
}

var defaultUsers = []seedUser{
	{username: "user1", password: "password1"},
	{username: "user2", password: "password2"},
}

func main() {
	log := logrus.New()

	cfgPath := flag.String("config", "configs/config.yml", "path to config file")
	productsPath := flag.String("products", "static/products.json", "path to products data file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := repository.NewPostgresDB(cfg.Database.URL, zap.NewNop())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	authRepo := repository.NewAuthRepository(db, zap.NewNop())
	productRepo := repository.NewProductRepository(db, zap.NewNop())

	if err := seedUsers(authRepo, log); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	if err := seedProducts(productRepo, *productsPath, log); err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	log.Info("Seeding finished")
}

func seedUsers(repo repository.AuthRepository, log *logrus.Logger) error {
	count, err := repo.CountUsers()
	if err != nil {
		return err
	}
	if count > 0 {
		log.Infof("Users table already has %d rows, skipping", count)
		return nil
	}

	for _, u := range defaultUsers {
		hash, err := crypto.HashPassword(u.password)
		if err != nil {
			return err
		}
		user := &models.User{Username: u.username, PasswordHash: hash}
		if err := repo.CreateUser(user); err != nil {
			return err
		}
		log.Infof("Created user %s (id=%d)", user.Username, user.ID)
	}
	return nil
}

func seedProducts(repo repository.ProductRepository, path string, log *logrus.Logger) error {
	_, total, err := repo.List(1, 1)
	if err != nil {
		return err
	}
	if total > 0 {
		log.Infof("Products table already has %d rows, skipping", total)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var items []seedProduct
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	for _, item := range items {
		product := &models.Product{
			Name:     fmt.Sprintf("%s %s", item.Name, item.Color),
			Price:    item.Price,
			Quantity: item.Quantity,
		}
		if err := repo.Create(product); err != nil {
			return err
		}
	}

	log.Infof("Created %d products", len(items))
	return nil
}
