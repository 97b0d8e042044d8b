package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"webmall/evaluation/webmall/checklist"
	"webmall/evaluation/webmall/evaluator"
	"webmall/evaluation/webmall/shops"
	"webmall/evaluation/webmall/task"
	"webmall/evaluation/webmall/taskspec"
	"webmall/internal/config"
	"webmall/internal/logging"
)

// CLI holds state shared by the subcommands.
type CLI struct {
	v          *viper.Viper
	configPath string
	settings   config.Settings
	envLookup  config.EnvLookup
	// weighting overrides the policy named by task files when set.
	weighting string
}

func newCLI() *CLI {
	return &CLI{v: viper.New(), envLookup: config.DefaultEnvLookup}
}

func newRootCommand(cli *CLI) *cobra.Command {
	root := &cobra.Command{
		Use:   "webmall",
		Short: "Score web-shopping agents against WebMall task checklists",
		Long: fmt.Sprintf(`%s

Builds weighted checklists from WebMall task sets and scores agent steps
against them, either one page at a time or as an HTTP evaluation server.

%s
  webmall tasks --tasks configs/task_sets.json
  webmall checklist Webmall_Checkout_Task1 --weighting answer_focused
  webmall validate Webmall_Single_Product_Search_Task1 --url http://localhost:3000/ --page answer.html
  webmall serve --port 8090`,
			bold("WebMall evaluation harness"),
			bold("EXAMPLES:")),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			disableColorUnlessTerminal(cmd.OutOrStdout())
			return cli.initialize()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cli.configPath, "config", "c", "", "Config file (yaml, json or toml)")
	flags.String("tasks", "", "Task set file")
	flags.String("env-file", "", "Fallback dotenv file with shop URLs")
	flags.StringVar(&cli.weighting, "weighting", "", "Weighting policy overriding the task set's (serve: fallback when a request names none)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	bindFlag(cli.v, "task_set_path", root, "tasks")
	bindFlag(cli.v, "env_file", root, "env-file")
	bindFlag(cli.v, "log.level", root, "log-level")

	root.AddCommand(newServeCommand(cli))
	root.AddCommand(newTasksCommand(cli))
	root.AddCommand(newChecklistCommand(cli))
	root.AddCommand(newValidateCommand(cli))
	return root
}

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	flag := cmd.PersistentFlags().Lookup(name)
	if flag == nil {
		flag = cmd.Flags().Lookup(name)
	}
	if flag != nil {
		_ = v.BindPFlag(key, flag)
	}
}

func (cli *CLI) initialize() error {
	settings, err := config.LoadSettings(cli.v, cli.configPath)
	if err != nil {
		return err
	}
	if cli.weighting != "" {
		settings.Weighting = cli.weighting
	}
	cli.settings = settings
	logging.SetDefault(logging.NewLogger(logging.LogConfig{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
	}))
	return nil
}

func (cli *CLI) loadCatalog() (*taskspec.Catalog, error) {
	return taskspec.LoadCatalog(cli.settings.TaskSetPath)
}

func (cli *CLI) loadURLs() (shops.URLs, error) {
	return config.LoadShopURLs(
		config.WithEnv(cli.envLookup),
		config.WithEnvFile(cli.settings.EnvFile),
	)
}

// newTask resolves everything a task instance needs from the settings. The
// --weighting flag wins over the weighting declared by the task set.
func (cli *CLI) newTask(taskID string, opts ...task.Option) (*task.Task, checklist.WeightPolicy, error) {
	catalog, err := cli.loadCatalog()
	if err != nil {
		return nil, checklist.WeightPolicy{}, err
	}
	spec, _, ok := catalog.Find(taskID)
	if !ok {
		return nil, checklist.WeightPolicy{}, fmt.Errorf("task %q not found in %s", taskID, cli.settings.TaskSetPath)
	}
	urls, err := cli.loadURLs()
	if err != nil {
		return nil, checklist.WeightPolicy{}, err
	}
	registry, err := cli.settings.Registry()
	if err != nil {
		return nil, checklist.WeightPolicy{}, err
	}
	policy, err := registry.Lookup(cli.policyFor(catalog, taskID))
	if err != nil {
		return nil, checklist.WeightPolicy{}, err
	}

	evalOpts := evaluator.DefaultOptions()
	evalOpts.AnswerSource = cli.settings.AnswerSource
	base := []task.Option{
		task.WithPolicy(policy),
		task.WithCompletionToken(cli.settings.CompletionToken),
		task.WithEvaluatorOptions(evalOpts),
	}
	t, err := task.New(spec, urls, append(base, opts...)...)
	if err != nil {
		return nil, checklist.WeightPolicy{}, err
	}
	return t, policy, nil
}

func (cli *CLI) policyFor(catalog *taskspec.Catalog, taskID string) string {
	if cli.weighting != "" {
		return cli.weighting
	}
	return catalog.Weighting(taskID, cli.settings.Weighting)
}
