//go:build js && wasm

// Command scandoc-wasm binds the Enter-key handler to the page's
// user-input field and output element.
package main

import (
	"context"
	"log/slog"
	"os"
	"syscall/js"

	"scandoc_cli/pkg/ask"
	"scandoc_cli/pkg/config"
	"scandoc_cli/pkg/handler"
)

const (
	inputID  = "user-input"
	outputID = "output"
)

type domField struct {
	el js.Value
}

func (f domField) Value() string {
	return f.el.Get("value").String()
}

func (f domField) Clear() {
	f.el.Set("value", "")
}

type domElement struct {
	el js.Value
}

func (e domElement) SetHTML(html string) {
	e.el.Set("innerHTML", html)
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	doc := js.Global().Get("document")
	input := doc.Call("getElementById", inputID)
	output := doc.Call("getElementById", outputID)
	if input.IsNull() || output.IsNull() {
		slog.Error("dom_elements_missing", "input", inputID, "output", outputID)
		return
	}

	origin := js.Global().Get("location").Get("origin").String()
	client, err := ask.NewClient(origin, config.DefaultAskPath)
	if err != nil {
		slog.Error("ask_client_failed", "origin", origin, "error", err)
		return
	}

	h := handler.New(client, domField{el: input}, domElement{el: output})
	ctx := context.Background()

	onKeyPress := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		h.HandleKey(ctx, args[0].Get("key").String())
		return nil
	})
	defer onKeyPress.Release()

	input.Call("addEventListener", "keypress", onKeyPress)
	slog.Info("scandoc_wasm_ready", "endpoint", client.Endpoint())

	select {}
}
