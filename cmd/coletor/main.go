package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inventario-hardware/internal/collector"
	"inventario-hardware/internal/logging"
	"inventario-hardware/internal/validation"
)

var (
	serverURL    string
	secretaria   string
	setor        string
	matricula    string
	nomeCompleto string
	dryRun       bool
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "coletor",
	Short: "Collect this machine's hardware and register it in the inventory",
	Long: `coletor reads the local hardware (host name, processor, disks, RAM and
connected monitors) and submits it, together with the operator's details, to
the inventory API. A machine or matricula that is already registered is refused.

Examples:
  coletor --server http://inventario:3000 --secretaria TI --setor Suporte \
    --matricula 123 --nome "João Silva"

  # print the collected record without submitting
  coletor --dry-run --secretaria TI --setor Suporte --matricula 123 --nome "João Silva"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&serverURL, "server", "http://localhost:3000", "Inventory API base URL")
	flags.StringVar(&secretaria, "secretaria", "", "Secretaria the machine belongs to")
	flags.StringVar(&setor, "setor", "", "Setor inside the secretaria")
	flags.StringVar(&matricula, "matricula", "", "Operator's matricula")
	flags.StringVar(&nomeCompleto, "nome", "", "Operator's full name")
	flags.BoolVar(&dryRun, "dry-run", false, "Print the record instead of submitting it")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level")

	for _, name := range []string{"secretaria", "setor", "matricula", "nome"} {
		_ = rootCmd.MarkFlagRequired(name)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	logger, err := logging.New(logLevel, "console", "coletor")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap := collector.NewProber(logger).Collect(ctx)
	sub := collector.BuildSubmission(snap, secretaria, setor, matricula, nomeCompleto)

	// catch blank answers before bothering the server
	if _, err := validation.Validate(sub); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Dispositivo: %s\nUsuário:     %s\nProcessador: %s\nDisco:       %s\nRAM:         %s\nMonitores:   %d\n",
		sub.NomeDispositivo, sub.UsuarioLogado, sub.Processador, sub.Disco, sub.RAM, len(sub.Monitores))
	if dryRun {
		return nil
	}

	id, err := collector.NewClient(serverURL, logger).Register(ctx, sub)
	var already *collector.AlreadyRegisteredError
	if errors.As(err, &already) {
		logger.Warn("registration refused", zap.Bool("maquina_existe", already.Registration.MaquinaExiste),
			zap.Bool("matricula_existe", already.Registration.MatriculaExiste))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Dados de hardware registrados com sucesso! (id %d)\n", id)
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
