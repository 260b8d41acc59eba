package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"polarizados_ya/internal/config"
	"polarizados_ya/internal/console/apiclient"
	"polarizados_ya/internal/console/camera"
	"polarizados_ya/internal/console/session"
	"polarizados_ya/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

const usage = `Uso: console <comando> [opciones]

Comandos:
  login       inicia sesión (-email, -password o CONSOLE_PASSWORD)
  logout      cierra la sesión guardada
  whoami      muestra el usuario actual y las notificaciones sin leer
  dashboard   estadísticas del día
  orders      lista las órdenes de servicio por estado (-status)
  advance     avanza una orden al siguiente estado (-id)
  assign      asigna un técnico a una orden (-id, -tech)
  quote       crea una cotización (-plate, -services, -notes, -approve)
  inspect     inspección 360 de ingreso (-plate, -photos, -damage, -notes, -order)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConsole()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Init(cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	tokenPath, err := session.DefaultTokenPath()
	if err != nil {
		log.Fatalf("Failed to resolve token path: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := apiclient.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	sess := session.New(client, session.NewFileTokenStore(tokenPath), session.WithPollInterval(cfg.PollInterval))
	defer sess.Close()

	app := &console{cfg: cfg, sess: sess, out: os.Stdout}
	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Get().Debug("[console] command failed", zap.String("command", os.Args[1]), zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %s\n", describe(err))
		os.Exit(1)
	}
}

// describe turns the console error taxonomy into a line for the operator.
func describe(err error) string {
	var verr *apiclient.ValidationError
	var rej *apiclient.ServerRejectionError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.As(err, &rej):
		return fmt.Sprintf("el servidor rechazó la operación (%d): %s", rej.StatusCode, rej.Detail)
	case errors.Is(err, apiclient.ErrSessionExpired):
		return "la sesión expiró, vuelve a iniciar sesión"
	case errors.Is(err, apiclient.ErrTimeout):
		return "el servidor no respondió a tiempo"
	case errors.Is(err, camera.ErrDeviceAccess):
		return "no se pudo acceder a la cámara: " + err.Error()
	}
	return err.Error()
}
