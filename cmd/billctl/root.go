package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/application/service"
	"github.com/garyjia/billed/internal/config"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/garyjia/billed/internal/infrastructure/external/remote"
	"github.com/garyjia/billed/pkg/utils"
)

// app carries what every command needs once the root pre-run has loaded config
type app struct {
	v      *viper.Viper
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "billctl",
		Short: "Billed expense reports from the terminal",
		Long: `billctl talks to a Billed store API on behalf of one user.

It lists your bills latest first, submits new bills with their receipt,
exports the list as a spreadsheet and shows receipts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cfgFile)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./configs/config.yaml)")
	flags.String("store-url", "", "bill store API base URL (env BILLED_STORE_URL)")
	flags.String("email", "", "session email (env BILLED_SESSION_EMAIL)")
	flags.String("user-type", entity.UserTypeEmployee, "session user type (Employee, Admin)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")

	_ = a.v.BindPFlag("store.remote_url", flags.Lookup("store-url"))
	_ = a.v.BindPFlag("session.email", flags.Lookup("email"))
	_ = a.v.BindPFlag("session.type", flags.Lookup("user-type"))
	_ = a.v.BindPFlag("logger.level", flags.Lookup("log-level"))

	cmd.AddCommand(billsCmd(a))
	cmd.AddCommand(versionCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "billctl %s\n", version)
			return err
		},
	}
}

func (a *app) init(cfgFile string) error {
	if err := config.LoadDotEnv(""); err != nil {
		return err
	}

	a.v.SetEnvPrefix(config.EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindEnv("store.remote_url", "BILLED_STORE_URL")
	a.v.SetDefault("store.timeout", 30*time.Second)

	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		a.v.AddConfigPath("configs")
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      a.v.GetString("logger.level"),
		OutputPath: "stderr",
		Format:     "console",
	})
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.logger = logger

	return nil
}

// session returns the user the commands act for
func (a *app) session() (entity.User, error) {
	email := a.v.GetString("session.email")
	if email == "" {
		return entity.User{}, errors.New("--email is required")
	}
	if err := utils.ValidateEmail(email); err != nil {
		return entity.User{}, err
	}

	userType := a.v.GetString("session.type")
	switch {
	case strings.EqualFold(userType, entity.UserTypeAdmin):
		userType = entity.UserTypeAdmin
	case userType == "" || strings.EqualFold(userType, entity.UserTypeEmployee):
		userType = entity.UserTypeEmployee
	default:
		return entity.User{}, fmt.Errorf("unknown user type %q", userType)
	}

	return entity.User{Type: userType, Email: email}, nil
}

func (a *app) store(user entity.User) (port.BillStore, error) {
	baseURL := a.v.GetString("store.remote_url")
	if baseURL == "" {
		return nil, errors.New("--store-url is required")
	}

	client := remote.NewClient(remote.ClientConfig{
		BaseURL: baseURL,
		Timeout: a.v.GetDuration("store.timeout"),
	}, a.logger)
	return client.ForUser(user), nil
}

// serviceConfig builds the collaborators of the bill services for one command run
func (a *app) serviceConfig(cmd *cobra.Command) (service.Config, *terminalDocument, *navigationLog, error) {
	user, err := a.session()
	if err != nil {
		return service.Config{}, nil, nil, err
	}

	store, err := a.store(user)
	if err != nil {
		return service.Config{}, nil, nil, err
	}

	doc := newTerminalDocument(cmd.OutOrStdout(), cmd.ErrOrStderr())
	nav := &navigationLog{}

	return service.Config{
		Document: doc,
		Navigate: nav.Navigate,
		Store:    store,
		Session:  &user,
		Logger:   utils.NewServiceLogger(a.logger),
	}, doc, nav, nil
}
