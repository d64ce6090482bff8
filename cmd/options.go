// =============================================================================
// Relatório de Visitas - Options Command
// =============================================================================
//
// This file defines the 'options' command, which prints the selector data
// the visit form is built on: states, banks, management forms, property
// types, visit objectives, physical-condition states, and the participant
// directory. Useful when filling a draft by hand.
//
// COMMAND USAGE:
//   relatorio options [estados|bancos|gestao|imovel|objetivos|estado-fisico|participantes]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coopvisita/relatorio-visitas/internal/lookup"
)

// optionsCmd represents the 'options' command.
var optionsCmd = &cobra.Command{
	Use:       "options [estados|bancos|gestao|imovel|objetivos|estado-fisico|participantes]",
	Short:     "List the selector options the form accepts",
	Long: `List the accepted values for the draft selector fields: the state codes
(uf), the bank names (banco), the management forms (formaGestao), the
property types (tipoImovel), the visit objectives (objetivoVisita), the
physical-condition states (estadoFisicoVisual), and the participant
directory. With no argument, every table is printed.`,
	ValidArgs: []string{"estados", "bancos", "gestao", "imovel", "objetivos", "estado-fisico", "participantes"},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := ""
		if len(args) == 1 {
			table = args[0]
		}

		if table == "" || table == "estados" {
			fmt.Println("Estados:")
			for _, s := range lookup.States {
				fmt.Printf("  %s  %s\n", s.Code, s.Name)
			}
		}
		if table == "" || table == "bancos" {
			fmt.Println("Bancos:")
			for _, b := range lookup.Banks {
				fmt.Printf("  %s  %s\n", b.Code, b.Name)
			}
		}
		if table == "" || table == "gestao" {
			fmt.Println("Formas de Gestão:")
			for _, f := range lookup.ManagementForms {
				fmt.Printf("  %s\n", f)
			}
		}
		if table == "" || table == "imovel" {
			fmt.Println("Tipos de Imóvel:")
			for _, p := range lookup.PropertyTypes {
				fmt.Printf("  %s\n", p)
			}
		}
		if table == "" || table == "objetivos" {
			fmt.Println("Objetivos da Visita:")
			for _, o := range lookup.VisitObjectives {
				fmt.Printf("  %s\n", o)
			}
		}
		if table == "" || table == "estado-fisico" {
			fmt.Println("Estados Físico/Visual:")
			for _, c := range lookup.PhysicalConditions {
				fmt.Printf("  %s\n", c)
			}
		}
		if table == "" || table == "participantes" {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			names, err := lookup.Participants(cfg.ParticipantsFile)
			if err != nil {
				return err
			}
			fmt.Println("Participantes:")
			for _, n := range names {
				fmt.Printf("  %s\n", n)
			}
		}
		return nil
	},
}

// init registers the options command with the root command.
func init() {
	rootCmd.AddCommand(optionsCmd)
}
