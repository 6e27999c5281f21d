package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vendas-insight-api/infrastructure/database/postgres"
	"github.com/vfg2006/vendas-insight-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/vendas-insight-api/infrastructure/repository"
	"github.com/vfg2006/vendas-insight-api/internal/api"
	"github.com/vfg2006/vendas-insight-api/internal/config"
	"github.com/vfg2006/vendas-insight-api/internal/scheduler"
	"github.com/vfg2006/vendas-insight-api/internal/usecases/asking"
	"github.com/vfg2006/vendas-insight-api/internal/usecases/authenticating"
	"github.com/vfg2006/vendas-insight-api/internal/usecases/ingesting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	datasetRepo := repository.NewDatasetRepository(pgConn)
	vendaRepo := repository.NewVendaRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	ingester := ingesting.NewService(vendaRepo, datasetRepo)

	narrator := gemini.New(cfg)
	asker := asking.NewService(vendaRepo, datasetRepo, narrator)

	retentionService := scheduler.NewRetentionService(datasetRepo, vendaRepo, cfg)
	if err := retentionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar a rotina de retenção de planilhas")
	} else {
		logrus.Info("Rotina de retenção de planilhas iniciada com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		ingester,
		asker,
		vendaRepo,
		retentionService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
