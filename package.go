// Package parentassist contains the core types of the parenting
// assistant: the tool registry, the language model abstraction, the
// per-question transcript, and the execution context that carries
// stats, limits and trace events through one reasoning-action loop.
//
// The assistant answers parenting questions by driving a bounded
// ReAct-style loop against a locally hosted Ollama model. Each
// iteration the model is shown the question, the tools it may use and
// the transcript so far; its response is parsed into a directive
// (call a tool, give a final answer, or neither) and the loop either
// invokes the requested tool and feeds the observation back, or
// terminates with an answer. A hard iteration cap and a set of
// consecutive-error limits guarantee termination.
//
// # Wiring
//
//	cfg, err := config.Load("config.yaml")
//	model, err := models.NewOllama(models.OllamaOptions{
//	    Model:       cfg.Model,
//	    Host:        cfg.OllamaHost,
//	    Temperature: cfg.Temperature,
//	    NumCtx:      cfg.NumCtx,
//	})
//
//	registry := parentassist.NewRegistry()
//	registry.Register(book)   // tools.LoadBookKnowledge(...)
//	registry.Register(search) // tools.NewWebSearch()
//
//	timeout, err := cfg.ModelCallTimeout()
//	ctrl, err := agent.NewController(model, registry, agent.Config{
//	    MaxIterations: cfg.MaxIterations,
//	    ModelTimeout:  timeout,
//	})
//
//	outcome, err := ctrl.Run(ctx, "My child won't clean up toys")
//
// The interactive console in cmd/parent-assistant assembles exactly
// this wiring.
//
// # Sub-packages
//
//   - agent: the loop controller
//   - format: parsing of the model's labeled-field output
//   - models: langchaingo wrapper and the Ollama constructor
//   - tools: book knowledge and web search tools
//   - config: startup configuration (defaults, YAML, env)
//   - hooks: lifecycle hook registry
//   - loggers: YAML trace logging hook
package parentassist
