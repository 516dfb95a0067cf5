package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/config"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/cache"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity/hashing"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/repository"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/pkg/database"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "admin",
		Short: "Управление учётными записями Lasting Impressions",
		Long: `Служебные команды для учётных записей.

Первого администратора нельзя создать через HTTP: /api/auth/register
требует токен администратора. Для этого есть create-admin.

Examples:
  admin create-admin --email owner@example.com --password secret --name Owner
  admin set-role --email user@example.com --role admin`,
		SilenceUsage: true,
	}
	root.AddCommand(newCreateAdminCmd(), newSetRoleCmd())
	return root
}

func newCreateAdminCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Создать пользователя с ролью admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn := openIdentity()
			defer closeFn()

			p, err := svc.SignUp(cmd.Context(), identity.SignUpInput{
				Email:    email,
				Password: password,
				Name:     name,
				Role:     models.RoleAdmin,
			})
			if errors.Is(err, identity.ErrEmailExists) {
				return fmt.Errorf("user %s already exists, use set-role", email)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin created: %s (%s)\n", p.Email, p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email администратора")
	cmd.Flags().StringVar(&password, "password", "", "Пароль (не короче 6 символов)")
	cmd.Flags().StringVar(&name, "name", "", "Имя")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if len(password) < 6 {
			return errors.New("--password must be at least 6 characters")
		}
		return nil
	}
	return cmd
}

func newSetRoleCmd() *cobra.Command {
	var email, role string
	cmd := &cobra.Command{
		Use:   "set-role",
		Short: "Сменить роль пользователя (admin или customer)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn := openIdentity()
			defer closeFn()

			p, err := svc.SetRole(cmd.Context(), email, models.Role(role))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", p.Email, p.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email пользователя")
	cmd.Flags().StringVar(&role, "role", "", "Новая роль: admin или customer")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

// openIdentity подключается к базе пользователей и, если включён, к redis,
// чтобы смена роли сразу сбрасывала закэшированный профиль.
func openIdentity() (*identity.Service, func()) {
	log := logger.L()
	_, identityCfg := config.LoadDB(log)
	redisCfg := config.LoadRedis()

	db := database.ConnectDB(&identityCfg.Config, log)
	closers := []func(){func() { database.CloseDB(db, log) }}

	var profileCache identity.ProfileCache
	if redisCfg.Enabled {
		rc, err := cache.NewRedisClient(redisCfg.Addr, redisCfg.Password, redisCfg.DB, log)
		if err != nil {
			log.Warn("redis unavailable, cached profiles expire on their own", zap.Error(err))
		} else {
			profileCache = rc
			closers = append(closers, func() { _ = rc.Close() })
		}
	}

	svc := identity.NewService(
		identity.NewStore(repository.NewIdentity(db)),
		hashing.NewBcrypt(0),
		nil,
		profileCache,
		time.Duration(redisCfg.TTLSeconds)*time.Second,
		0,
		log,
	)
	return svc, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}
