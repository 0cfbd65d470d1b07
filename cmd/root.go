// Package cmd provides the root command and CLI setup for unic.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"unic.dev/pkg/unic/internal/adapter"
	"unic.dev/pkg/unic/internal/controller"
	"unic.dev/pkg/unic/internal/domain"
	m "unic.dev/pkg/unic/internal/model"
)

var fsAdapter adapter.CaseFSAdapter
var procRunner adapter.ProcessRunner
var manifestStore adapter.ManifestStore
var diffViewer adapter.DiffViewer
var ui domain.UI
var workflow domain.Workflow

// filesFlag holds the input files and directories to test with.
var filesFlag []string

// maxDepthFlag bounds directory recursion during input discovery.
var maxDepthFlag int

// outputDirFlag is where evidence for failed cases is written.
var outputDirFlag string

// valgrindFlag wraps both targets in the memory-check supervisor.
var valgrindFlag bool

// timeoutFlag is the per-execution time budget in seconds.
var timeoutFlag float64

// verboseFlag forces debug logging.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalCaseFSAdapter()
	procRunner = adapter.NewLocalProcessRunner()
	manifestStore = adapter.NewYAMLManifestStore()
	diffViewer = adapter.NewBeyondCompareViewer()
	workflow = domain.NewWorkflow(
		domain.NewDiscoverer(fsAdapter),
		domain.NewCaseRunner(fsAdapter, procRunner),
		domain.NewEvidenceStore(fsAdapter),
		manifestStore,
		diffViewer,
		ui,
	)
}

const rootLongDescription = `Unic runs two candidate programs against a shared set of input files,
feeds each file to both programs on standard input and compares their
output. Failing cases are saved under the results directory and can be
inspected afterwards in Beyond Compare.

With --valgrind both programs additionally run under the memory checker,
and cases whose outputs match but leak or corrupt memory fail too.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unic <target1> <target2>",
		Short: "Compare the output of two programs over shared inputs",
		Long:  rootLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args)
		},
	}
}

func runCompare(cmd *cobra.Command, args []string) error {
	configureLogger(viper.GetString(logFilenameKey), verboseFlag || viper.GetBool(logVerboseKey))

	target1, err := m.ParseTarget(args[0])
	if err != nil {
		return err
	}

	target2, err := m.ParseTarget(args[1])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	timeout := viper.GetFloat64(timeoutConfigKey)

	return workflow.Compare(ctx, domain.CompareArgs{
		Target1:   target1,
		Target2:   target2,
		Inputs:    parsePaths(filesFlag),
		MaxDepth:  viper.GetInt(maxDepthFlagName),
		OutputDir: m.Path(viper.GetString(outputFlagName)),
		Valgrind:  viper.GetBool(valgrindFlagName),
		Timeout:   time.Duration(timeout * float64(time.Second)),
	})
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&filesFlag, filesFlagName, "f", nil, "input files or directories to test with (can be repeated)")
	cobra.CheckErr(cmd.MarkFlagRequired(filesFlagName))

	cmd.Flags().IntVarP(&maxDepthFlag, maxDepthFlagName, "d", viper.GetInt(maxDepthFlagName), "directory recursion depth for input discovery")
	bindFlagToConfig(cmd.Flags().Lookup(maxDepthFlagName), maxDepthFlagName)

	cmd.Flags().BoolVarP(&valgrindFlag, valgrindFlagName, "v", viper.GetBool(valgrindFlagName), "run both targets under valgrind")
	bindFlagToConfig(cmd.Flags().Lookup(valgrindFlagName), valgrindFlagName)

	cmd.Flags().Float64VarP(&timeoutFlag, timeoutFlagName, "t", viper.GetFloat64(timeoutConfigKey), "per-execution timeout in seconds")
	bindFlagToConfig(cmd.Flags().Lookup(timeoutFlagName), timeoutConfigKey)

	cmd.PersistentFlags().StringVarP(
		&outputDirFlag, outputFlagName, "o",
		viper.GetString(outputFlagName),
		"output directory for failed-case evidence",
	)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVar(&verboseFlag, verboseFlagName, viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
