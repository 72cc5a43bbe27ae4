// Command admin-token mints a staff bearer token for the admin API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/scentvault/storefront-backend/pkg/auth"
	"github.com/scentvault/storefront-backend/pkg/config"
	"github.com/scentvault/storefront-backend/pkg/enums"
	"github.com/scentvault/storefront-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "admin-token", Format: "console"})
	_ = godotenv.Load()

	staffID := flag.String("staff", "", "staff identifier placed in the token subject")
	role := flag.String("role", string(enums.StaffRoleAdmin), "admin|catalog_manager|support")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	parsed, err := enums.ParseStaffRole(*role)
	if err != nil {
		logg.Error(context.Background(), "invalid role", err)
		os.Exit(2)
	}

	token, err := auth.MintStaffToken(cfg.JWT, time.Now(), auth.StaffTokenPayload{StaffID: *staffID, Role: parsed})
	if err != nil {
		logg.Error(context.Background(), "failed to mint token", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
