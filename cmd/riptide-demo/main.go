// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

// riptide-demo renders small example apps into the in-memory document
// and prints the resulting HTML after simulated interactions.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riptidedev/riptide/dom"
	"github.com/riptidedev/riptide/vdom"
)

// set at build time
var RiptideVersion = "0.0.0"

var rootCmd = &cobra.Command{
	Use:   "riptide-demo",
	Short: "Riptide demo apps",
	Long:  `Renders example apps with the riptide VDOM engine into an in-memory document.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print riptide version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("v" + RiptideVersion)
	},
}

var counterClicks int

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Run the counter demo",
	Run: func(cmd *cobra.Command, args []string) {
		runCounter(counterClicks)
	},
}

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Run the todo demo",
	Run: func(cmd *cobra.Command, args []string) {
		runTodo()
	},
}

func init() {
	counterCmd.Flags().IntVar(&counterClicks, "clicks", 3, "number of simulated clicks")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(counterCmd)
	rootCmd.AddCommand(todoCmd)
}

func Counter(props vdom.Props) any {
	count, setCount, _ := vdom.UseState(0)
	return vdom.H("div", vdom.Props{"className": "counter"},
		vdom.H("span", vdom.Props{"id": "count"}, count),
		vdom.H("button", vdom.Props{"id": "inc", "onClick": func() {
			setCount(count + 1)
		}}, "+"),
	)
}

func runCounter(clicks int) {
	doc := dom.NewDocument()
	container := doc.CreateElement("div").(*dom.MemElement)
	root := vdom.NewRoot(container, vdom.WithManualScheduling())
	root.Render(vdom.H(vdom.ComponentFunc(Counter), nil))
	fmt.Printf("mounted:  %s\n", container.OuterHTML())
	button := findById(container, "inc")
	for i := 0; i < clicks; i++ {
		button.DispatchEvent(&dom.Event{Type: "click"})
		root.Flush()
	}
	fmt.Printf("after %d clicks: %s\n", clicks, container.OuterHTML())
}

type todoItem struct {
	Id    int
	Label string
	Done  bool
}

func TodoList(props vdom.Props) any {
	items, _, setItemsFn := vdom.UseState([]todoItem{
		{Id: 1, Label: "read the docs"},
		{Id: 2, Label: "write a component"},
		{Id: 3, Label: "render it"},
	})
	toggle := func(id int) {
		setItemsFn(func(prev []todoItem) []todoItem {
			next := make([]todoItem, len(prev))
			copy(next, prev)
			for i := range next {
				if next[i].Id == id {
					next[i].Done = !next[i].Done
				}
			}
			return next
		})
	}
	return vdom.H("ul", vdom.Props{"className": "todo"},
		vdom.ForEach(items, func(item todoItem, _ int) any {
			return vdom.H("li", vdom.Props{
				"key":       fmt.Sprint(item.Id),
				"id":        fmt.Sprintf("item-%d", item.Id),
				"className": vdom.Classes("item", vdom.Ternary(item.Done, "done", "")),
				"onClick":   func() { toggle(item.Id) },
			}, item.Label)
		}),
	)
}

func runTodo() {
	doc := dom.NewDocument()
	container := doc.CreateElement("div").(*dom.MemElement)
	root := vdom.NewRoot(container, vdom.WithManualScheduling())
	root.Render(vdom.H(vdom.ComponentFunc(TodoList), nil))
	fmt.Printf("mounted: %s\n", container.OuterHTML())
	second := findById(container, "item-2")
	second.DispatchEvent(&dom.Event{Type: "click"})
	root.Flush()
	fmt.Printf("toggled: %s\n", container.OuterHTML())
}

func findById(el *dom.MemElement, id string) *dom.MemElement {
	if attr, ok := el.GetAttribute("id"); ok && attr == id {
		return el
	}
	for _, child := range el.ChildNodes() {
		if childEl, ok := child.(*dom.MemElement); ok {
			if found := findById(childEl, id); found != nil {
				return found
			}
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
