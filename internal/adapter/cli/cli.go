// Package cli implements the command-line front end over the task service.
// It owns argument parsing, rendering (plain or JSON) and exit codes; all
// task semantics live in the service layer.
package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"tasknest/internal/adapter/cli/dto"
	"tasknest/internal/adapter/cli/mapper"
	"tasknest/internal/adapter/storage"
	"tasknest/internal/app/service"
	"tasknest/internal/config"
	"tasknest/internal/core/domain"
	"tasknest/internal/core/ports"
	"tasknest/pkg/apierrors"
)

type App struct {
	Tasks  ports.TaskService
	Search ports.SearchService
	Lang   string
	Out    io.Writer
	ErrOut io.Writer
}

// Run wires the store and services from cfg and executes one command.
// It returns the process exit code.
func Run(ctx context.Context, cfg *config.Config, args []string) int {
	store := storage.NewFileStore(cfg.DataFile)
	app := &App{
		Tasks:  service.NewTaskService(store, cfg.MaxDepth),
		Search: service.NewSearchService(),
		Lang:   cfg.Language,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
	return app.Run(ctx, args)
}

func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.printUsage()
		return apierrors.CodeValidation
	}

	command, rest := args[0], args[1:]
	if command == "help" || command == "-h" || command == "--help" {
		a.printUsage()
		return apierrors.CodeOK
	}

	err := a.dispatch(ctx, command, rest)
	if err != nil {
		payload := apierrors.FromError(err, a.Lang)
		fmt.Fprintf(a.ErrOut, "Error: %s\n", payload.ErrDetails.Message)
		return payload.ErrDetails.Code
	}
	return apierrors.CodeOK
}

func (a *App) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "add":
		return a.cmdAdd(ctx, args)
	case "list":
		return a.cmdList(ctx, args)
	case "show":
		return a.cmdShow(ctx, args)
	case "complete":
		return a.cmdComplete(ctx, args, true)
	case "uncomplete":
		return a.cmdComplete(ctx, args, false)
	case "remove":
		return a.cmdRemove(ctx, args)
	case "priority":
		return a.cmdPriority(ctx, args)
	case "search":
		return a.cmdSearch(ctx, args)
	default:
		a.printUsage()
		return domain.NewValidationError("unknown command: %s", command)
	}
}

func (a *App) cmdAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(a.ErrOut)
	priority := fs.String("priority", "medium", "Task priority (high, medium, low)")
	parent := fs.String("parent", "", "Parent task id or short id")
	asJSON := fs.Bool("json", false, "JSON output")
	if err := fs.Parse(args); err != nil {
		return domain.NewValidationError("invalid arguments: %v", err)
	}
	if fs.NArg() == 0 {
		return domain.NewValidationError("add requires a task description")
	}

	p, err := domain.ParsePriority(*priority)
	if err != nil {
		return err
	}

	task, err := a.Tasks.Add(ctx, domain.CreateTaskInput{
		Description: strings.Join(fs.Args(), " "),
		Priority:    p,
		ParentRef:   *parent,
	})
	if err != nil {
		return err
	}

	if *asJSON {
		return a.writeJSON(dto.AddResult{Success: true, Task: mapper.ToTaskItem(task)})
	}
	fmt.Fprintf(a.Out, "Task added: %s\n", task.ShortID())
	return nil
}

func (a *App) cmdList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(a.ErrOut)
	priority := fs.String("priority", "", "Filter by priority (high, medium, low)")
	status := fs.String("status", "", "Filter by status (complete, incomplete)")
	parent := fs.String("parent", "", "Show only subtasks of this task")
	asJSON := fs.Bool("json", false, "JSON output")
	if err := fs.Parse(args); err != nil {
		return domain.NewValidationError("invalid arguments: %v", err)
	}

	tasks, err := a.Tasks.List(ctx, domain.ListFilter{
		Priority:  domain.Priority(*priority),
		Status:    domain.Status(*status),
		ParentRef: *parent,
	})
	if err != nil {
		return err
	}

	if *asJSON {
		return a.writeJSON(dto.ListResult{Count: len(tasks), Tasks: mapper.ToTaskItems(tasks)})
	}
	fmt.Fprintf(a.Out, "Total tasks: %d\n", len(tasks))
	for _, task := range tasks {
		a.printTaskLine(task)
	}
	return nil
}

func (a *App) cmdShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(a.ErrOut)
	asJSON := fs.Bool("json", false, "JSON output")
	if err := fs.Parse(args); err != nil {
		return domain.NewValidationError("invalid arguments: %v", err)
	}
	if fs.NArg() != 1 {
		return domain.NewValidationError("show requires exactly one task id")
	}

	task, err := a.Tasks.Find(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	if *asJSON {
		return a.writeJSON(mapper.ToTaskItem(task))
	}
	fmt.Fprintf(a.Out, "ID:          %s\n", task.ID)
	fmt.Fprintf(a.Out, "Description: %s\n", task.Description)
	fmt.Fprintf(a.Out, "Completed:   %t\n", task.Completed)
	fmt.Fprintf(a.Out, "Priority:    %s\n", task.Priority)
	fmt.Fprintf(a.Out, "Created:     %s\n", task.CreatedAt.Format("2006-01-02 15:04:05"))
	if task.ParentID != "" {
		fmt.Fprintf(a.Out, "Parent:      %s\n", task.ParentID)
	}
	if len(task.Subtasks) > 0 {
		fmt.Fprintf(a.Out, "Subtasks:    %s\n", strings.Join(task.Subtasks, ", "))
	}
	return nil
}

func (a *App) cmdComplete(ctx context.Context, args []string, completed bool) error {
	name := "complete"
	if !completed {
		name = "uncomplete"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.ErrOut)
	asJSON := fs.Bool("json", false, "JSON output")
	if err := fs.Parse(args); err != nil {
		return domain.NewValidationError("invalid arguments: %v", err)
	}
	if fs.NArg() != 1 {
		return domain.NewValidationError("%s requires exactly one task id", name)
	}

	var task domain.Task
	var err error
	if completed {
		task, err = a.Tasks.Complete(ctx, fs.Arg(0))
	} else {
		task, err = a.Tasks.Uncomplete(ctx, fs.Arg(0))
	}
	if err != nil {
		return err
	}

	if *asJSON {
		return a.writeJSON(dto.AddResult{Success: true, Task: mapper.ToTaskItem(task)})
	}
	if completed {
		fmt.Fprintf(a.Out, "Task completed: %s\n", task.ShortID())
	} else {
		fmt.Fprintf(a.Out, "Task marked incomplete: %s\n", task.ShortID())
	}
	return nil
}

func (a *App) cmdRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	fs.SetOutput(a.ErrOut)
	asJSON := fs.Bool("json", false, "JSON output")
	if err := fs.Parse(args); err != nil {
		return domain.NewValidationError("invalid arguments: %v", err)
	}
	if fs.NArg() != 1 {
		return domain.NewValidationError("remove requires exactly one task id")
	}

	// Cascading and unconditional: any confirmation happens before this call.
	removed, err := a.Tasks.Remove(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	if *asJSON {
		return a.writeJSON(dto.RemoveResult{Success: true, Removed: removed})
	}
	fmt.Fprintf(a.Out, "Removed %d task(s)\n", removed)
	return nil
}

func (a *App) cmdPriority(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("priority", flag.ContinueOnError)
	fs.SetOutput(a.ErrOut)
	asJSON := fs.Bool("json", false, "JSON output")
	if err := fs.Parse(args); err != nil {
		return domain.NewValidationError("invalid arguments: %v", err)
	}
	if fs.NArg() != 2 {
		return domain.NewValidationError("priority requires a task id and a new priority")
	}

	p, err := domain.ParsePriority(fs.Arg(1))
	if err != nil {
		return err
	}
	change, err := a.Tasks.SetPriority(ctx, fs.Arg(0), p)
	if err != nil {
		return err
	}

	if *asJSON {
		return a.writeJSON(dto.PriorityResult{
			Success:  true,
			Task:     mapper.ToTaskItem(change.Task),
			Previous: string(change.Previous),
		})
	}
	fmt.Fprintf(a.Out, "Priority changed: %s -> %s (%s)\n", change.Previous, change.Task.Priority, change.Task.ShortID())
	return nil
}

func (a *App) cmdSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(a.ErrOut)
	caseSensitive := fs.Bool("case-sensitive", false, "Match case")
	asJSON := fs.Bool("json", false, "JSON output")
	if err := fs.Parse(args); err != nil {
		return domain.NewValidationError("invalid arguments: %v", err)
	}
	if fs.NArg() == 0 {
		return domain.NewValidationError("search requires at least one keyword")
	}

	tasks, err := a.Tasks.List(ctx, domain.ListFilter{})
	if err != nil {
		return err
	}
	matches, err := a.Search.Search(tasks, fs.Args(), *caseSensitive)
	if err != nil {
		return err
	}

	if *asJSON {
		return a.writeJSON(dto.ListResult{Count: len(matches), Tasks: mapper.ToTaskItems(matches)})
	}
	fmt.Fprintf(a.Out, "Found %d task(s)\n", len(matches))
	for _, task := range matches {
		a.printTaskLine(task)
	}
	return nil
}

func (a *App) printTaskLine(task domain.Task) {
	box := " "
	if task.Completed {
		box = "x"
	}
	marker := ""
	if task.ParentID != "" {
		marker = "  - "
	}
	fmt.Fprintf(a.Out, "%s[%s] %s %s (%s)\n", marker, box, task.ShortID(), task.Description, task.Priority)
}

func (a *App) writeJSON(v any) error {
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		zap.L().Error("failed to encode output", zap.Error(err))
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func (a *App) printUsage() {
	fmt.Fprint(a.ErrOut, `Usage: tasks <command> [flags] [args]

Commands:
  add [-priority P] [-parent ID] <description>   Add a task
  list [-priority P] [-status S] [-parent ID]    List tasks
  show <id>                                      Show one task
  complete <id>                                  Mark a task complete
  uncomplete <id>                                Mark a task incomplete
  remove <id>                                    Remove a task and its subtasks
  priority <id> <high|medium|low>                Change a task's priority
  search [-case-sensitive] <keyword>...          Search task descriptions

Tasks may be referenced by full id or by the first 8 characters of the id.
All commands accept -json for machine-readable output.
`)
}
