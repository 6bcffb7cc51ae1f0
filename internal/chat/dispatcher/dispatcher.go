package dispatcher

import (
	"context"
	"errors"

	"meal-planning-assistant/internal/agent"
	"meal-planning-assistant/internal/chat"
)

func (d *implDispatcher) Dispatch(ctx context.Context, input Input) *Outcome {
	out := &Outcome{
		Results: map[string]interface{}{},
		Patch:   chat.ContextPatch{ToolResults: map[string]interface{}{}},
	}

	tools, ok := intentTools[input.Decision.Intent]
	if !ok {
		return out // CONVERSATIONAL and UNKNOWN run no tools
	}

	for i, name := range tools {
		if i > 0 && ctx.Err() != nil {
			d.l.Warn(ctx, "dispatcher.Dispatch: context cancelled between tools", "next_tool", name)
			out.Failed = true
			break
		}

		tool, found := d.registry.Get(name)
		if !found {
			d.l.Errorf(ctx, "dispatcher.Dispatch: tool %q not registered", name)
			out.Failed = true
			break
		}

		out.Attempted = append(out.Attempted, name)
		d.runTool(ctx, tool, input, out)

		// Later tools in a sequence depend on earlier output; stop on the
		// first clarification or terminal failure.
		if out.Clarification != "" || out.Failed {
			break
		}
	}

	return out
}

// runTool drives one tool through the validate/execute state machine with a
// single argument re-extraction retry on validation failure.
func (d *implDispatcher) runTool(ctx context.Context, tool agent.Tool, input Input, out *Outcome) {
	name := tool.Name()

	args, mcErr := d.resolveArgs(tool, input)
	if mcErr != nil {
		d.l.Info(ctx, "dispatcher.runTool: missing context", "tool", name, "field", mcErr.Field)
		out.Records = append(out.Records, chat.ToolInvocationRecord{
			ToolName: name, Args: args, Attempt: 1, Outcome: chat.OutcomeFailed, Err: mcErr,
		})
		out.Clarification = clarificationFor(mcErr.Field)
		return
	}

	var hint string
	for attempt := 1; attempt <= 2; attempt++ {
		if attempt == 2 {
			out.Retried = true
			extracted, err := d.classifier.ExtractArgs(ctx, input.Message, name, tool.Parameters(), hint)
			if err != nil {
				d.l.Warn(ctx, "dispatcher.runTool: argument re-extraction failed", "tool", name, "error", err.Error())
				out.Records = append(out.Records, chat.ToolInvocationRecord{
					ToolName: name, Args: args, Attempt: attempt, Outcome: chat.OutcomeFailed, Err: err,
				})
				out.Failed = true
				return
			}
			args, mcErr = d.injectContext(tool, extracted, input)
			if mcErr != nil {
				out.Records = append(out.Records, chat.ToolInvocationRecord{
					ToolName: name, Args: args, Attempt: attempt, Outcome: chat.OutcomeFailed, Err: mcErr,
				})
				out.Clarification = clarificationFor(mcErr.Field)
				return
			}
		}

		if err := agent.ValidateArgs(name, tool.Parameters(), args); err != nil {
			var vErr *chat.ValidationError
			if errors.As(err, &vErr) && attempt == 1 {
				d.l.Info(ctx, "dispatcher.runTool: validation failed, retrying with hint", "tool", name, "field", vErr.Field)
				hint = vErr.Hint()
				out.Records = append(out.Records, chat.ToolInvocationRecord{
					ToolName: name, Args: args, Attempt: attempt, Outcome: chat.OutcomeRetried, Err: vErr,
				})
				continue
			}
			d.l.Warn(ctx, "dispatcher.runTool: validation failed terminally", "tool", name, "error", err.Error())
			out.Records = append(out.Records, chat.ToolInvocationRecord{
				ToolName: name, Args: args, Attempt: attempt, Outcome: chat.OutcomeFailed, Err: err,
			})
			out.Failed = true
			return
		}

		tctx, cancel := context.WithTimeout(ctx, d.toolTimeout)
		result, execErr := tool.Execute(tctx, args)
		cancel()

		if execErr != nil {
			var vErr *chat.ValidationError
			var mc *chat.MissingContextError
			switch {
			case errors.As(execErr, &mc):
				out.Records = append(out.Records, chat.ToolInvocationRecord{
					ToolName: name, Args: args, Attempt: attempt, Outcome: chat.OutcomeFailed, Err: mc,
				})
				out.Clarification = clarificationFor(mc.Field)
				return

			case errors.As(execErr, &vErr) && attempt == 1:
				// Tools report semantic argument problems before any side
				// effect, so a second attempt is safe even for mutating tools.
				hint = vErr.Hint()
				out.Records = append(out.Records, chat.ToolInvocationRecord{
					ToolName: name, Args: args, Attempt: attempt, Outcome: chat.OutcomeRetried, Err: vErr,
				})
				continue

			default:
				var te *chat.ToolExecutionError
				if !errors.As(execErr, &te) {
					execErr = &chat.ToolExecutionError{Tool: name, Err: execErr}
				}
				d.l.Error(ctx, "dispatcher.runTool: execution failed", "tool", name, "attempt", attempt, "error", execErr.Error())
				out.Records = append(out.Records, chat.ToolInvocationRecord{
					ToolName: name, Args: args, Attempt: attempt, Outcome: chat.OutcomeFailed, Err: execErr,
				})
				out.Failed = true
				return
			}
		}

		outcome := chat.OutcomeSuccess
		if attempt > 1 {
			outcome = chat.OutcomeRetried
		}
		out.Records = append(out.Records, chat.ToolInvocationRecord{
			ToolName: name, Args: args, Attempt: attempt, Outcome: outcome, Result: result.Data,
		})
		out.Results[name] = result.Data
		if result.Summary != "" {
			out.Summaries = append(out.Summaries, result.Summary)
		}
		mergePatch(&out.Patch, result.ContextPatch)
		out.Patch.ToolResults[name] = result.Data
		d.l.Info(ctx, "dispatcher.runTool: tool succeeded", "tool", name, "attempt", attempt)
		return
	}
}

// resolveArgs builds the first-attempt arguments from classifier slots plus
// session, preference and location injection.
func (d *implDispatcher) resolveArgs(tool agent.Tool, input Input) (map[string]interface{}, *chat.MissingContextError) {
	props, _ := tool.Parameters()["properties"].(map[string]interface{})

	args := map[string]interface{}{}
	for k, v := range input.Decision.Slots {
		if _, declared := props[k]; declared {
			args[k] = v
		}
	}
	return d.injectContext(tool, args, input)
}

// injectContext fills declared-but-absent arguments from the session
// context, user preferences and location data, then checks that required
// context-sourced ids are actually present.
func (d *implDispatcher) injectContext(tool agent.Tool, args map[string]interface{}, input Input) (map[string]interface{}, *chat.MissingContextError) {
	schema := tool.Parameters()
	props, _ := schema["properties"].(map[string]interface{})
	if args == nil {
		args = map[string]interface{}{}
	}

	inject := func(field, value string) {
		if value == "" {
			return
		}
		if _, declared := props[field]; !declared {
			return
		}
		if cur, ok := args[field]; ok && cur != nil && cur != "" {
			return
		}
		args[field] = value
	}

	if sc := input.SessionCtx; sc != nil {
		inject("meal_plan_id", sc.MealPlanID)
		inject("grocery_list_id", sc.GroceryListID)
		inject("user_id", sc.UserID)
	}
	if p := input.Prefs; p != nil {
		inject("dietary", p.Dietary)
		inject("goal", p.Goal)
		inject("cuisine", p.Cuisine)
		if _, declared := props["allergies"]; declared && args["allergies"] == nil && len(p.Allergies) > 0 {
			list := make([]interface{}, len(p.Allergies))
			for i, a := range p.Allergies {
				list[i] = a
			}
			args["allergies"] = list
		}
	}
	if loc := input.Location; loc != nil {
		inject("currency", loc.Currency)
		inject("city", loc.City)
		inject("country", loc.Country)
	}
	inject("message", input.Message)

	// Context-sourced ids that are required but unresolvable are a missing
	// context condition, never a validation failure.
	if required, ok := schema["required"].([]string); ok {
		for _, field := range required {
			if field != "meal_plan_id" && field != "grocery_list_id" {
				continue
			}
			if v, ok := args[field]; !ok || v == nil || v == "" {
				return args, &chat.MissingContextError{Tool: tool.Name(), Field: field}
			}
		}
	}
	return args, nil
}

func clarificationFor(field string) string {
	if msg, ok := clarifications[field]; ok {
		return msg
	}
	return defaultClarification
}

func mergePatch(dst *chat.ContextPatch, src *chat.ContextPatch) {
	if src == nil {
		return
	}
	if src.UserID != nil {
		dst.UserID = src.UserID
	}
	if src.MealPlanID != nil {
		dst.MealPlanID = src.MealPlanID
	}
	if src.GroceryListID != nil {
		dst.GroceryListID = src.GroceryListID
	}
	for k, v := range src.ToolResults {
		dst.ToolResults[k] = v
	}
}
