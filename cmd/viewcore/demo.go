package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/viewcore/internal/todo"
	"github.com/vango-dev/viewcore/pkg/protocol"
	"github.com/vango-dev/viewcore/pkg/vdom"
	"github.com/vango-dev/viewcore/pkg/view"
)

// step is one scripted interaction: find the target, send it a message.
type step struct {
	desc   string
	target func(root *vdom.Node) *vdom.Node
	msg    view.Message
}

func typeDraft(title string) step {
	return step{
		desc:   fmt.Sprintf("type %q", title),
		target: todo.FindInput,
		msg:    vdom.InputEvent{Value: title},
	}
}

func click(desc string, id int, label string) step {
	return step{
		desc:   desc,
		target: func(root *vdom.Node) *vdom.Node { return todo.FindButton(root, id, label) },
		msg:    vdom.Click{},
	}
}

func demoScript() []step {
	return []step{
		typeDraft("milk"),
		click("add", 0, "Add"),
		typeDraft("eggs"),
		click("add", 0, "Add"),
		typeDraft("bread"),
		click("add", 0, "Add"),
		click("mark #1 done", 1, "done"),
		click("remove #2", 2, "x"),
		click("undo #1", 1, "undo"),
	}
}

func demoCmd(flags *globalFlags) *cobra.Command {
	var showHTML bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay a scripted todo session and print the patches",
		Long: `Replay a scripted session against the todo app. Every pass
prints the patches it recorded and the size of the encoded patch frame.

Examples:
  viewcore demo
  viewcore demo --html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(flags, showHTML)
		},
	}

	cmd.Flags().BoolVar(&showHTML, "html", false, "Print the rendered tree after every step")

	return cmd
}

func runDemo(flags *globalFlags, showHTML bool) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	drv, ctx := newTodoDriver(cfg, todo.Logic, flags.logger(), nil)
	defer drv.Close()

	var seq uint64
	drv.OnPass(func(pass string) {
		patches := ctx.TakePatches()
		if len(patches) == 0 {
			return
		}
		seq++
		frame, err := protocol.PatchFrame(protocol.NewPatchesFrame(seq, patches)).Encode()
		if err != nil {
			info("%s: %d patches (not encodable: %v)", pass, len(patches), err)
			return
		}
		info("%s: %d patches, %d byte frame", pass, len(patches), len(frame))
		for _, p := range patches {
			info("  %s", formatPatch(p))
		}
	})
	drv.OnAction(func(a string) {
		if a != "" {
			success("%s", a)
		}
	})

	if err := drv.Start(); err != nil {
		return err
	}
	fmt.Println(vdom.Render(drv.Root()))

	for _, s := range demoScript() {
		fmt.Printf("\n> %s\n", s.desc)
		n := s.target(drv.Root())
		if n == nil {
			return fmt.Errorf("demo step %q: target not found", s.desc)
		}
		if err := drv.SendMessage(n.Path, s.msg); err != nil {
			return err
		}
		if _, err := drv.Drain(); err != nil {
			return err
		}
		if showHTML {
			fmt.Println(vdom.Render(drv.Root()))
		}
	}

	fmt.Println()
	fmt.Println(vdom.Render(drv.Root()))
	st := drv.Stats()
	success("%d passes, %d messages, %d stale", st.Passes, st.Messages, st.Stale)
	return nil
}

func formatPatch(p vdom.Patch) string {
	switch p.Op {
	case vdom.PatchSetText:
		return fmt.Sprintf("%s #%d %q", p.Op, p.Target, p.Value)
	case vdom.PatchSetAttr:
		return fmt.Sprintf("%s #%d %s=%q", p.Op, p.Target, p.Key, p.Value)
	case vdom.PatchRemoveAttr:
		return fmt.Sprintf("%s #%d %s", p.Op, p.Target, p.Key)
	case vdom.PatchInsertNode, vdom.PatchReplaceNode:
		return fmt.Sprintf("%s #%d into #%d at %d: %s", p.Op, p.Target, p.Parent, p.Index, vdom.Render(p.Node))
	default:
		return fmt.Sprintf("%s #%d in #%d at %d", p.Op, p.Target, p.Parent, p.Index)
	}
}
