package numfmt

// Operation names reported in HookContext.
const (
	OperationBeautify = "beautify"
	OperationParts    = "parts"
	OperationSpeech   = "speech"
	OperationParse    = "parse"
)

// FormatHook observes and may rewrite engine calls. Before runs ahead of the
// operation and may change Locale, Value, Input or Options; After sees the
// outcome and may replace Result, Number or Error.
type FormatHook interface {
	BeforeFormat(ctx *HookContext)
	AfterFormat(ctx *HookContext)
}

// HookContext carries one engine call through the hooks.
type HookContext struct {
	Operation string
	Locale    string
	// Value is set for beautify and parts.
	Value Value
	// Input is set for speech and parse.
	Input   string
	Options FormatOptions

	Result string
	// Number is the parse result.
	Number   float64
	Parts    []NumberPart
	Error    error
	Metadata map[string]any
}

func (ctx *HookContext) ensureMetadata() {
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
}

func (ctx *HookContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	ctx.ensureMetadata()
	ctx.Metadata[key] = value
}

func (ctx *HookContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

// FormatHookFuncs adapts plain functions to FormatHook.
type FormatHookFuncs struct {
	Before func(ctx *HookContext)
	After  func(ctx *HookContext)
}

func (h FormatHookFuncs) BeforeFormat(ctx *HookContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h FormatHookFuncs) AfterFormat(ctx *HookContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

func (e *Engine) before(ctx *HookContext) {
	locale := ctx.Locale
	for _, hook := range e.hooks {
		hook.BeforeFormat(ctx)
	}
	switch {
	case ctx.Locale != locale:
		ctx.Options.Locale = ctx.Locale
	case ctx.Options.Locale != "":
		ctx.Locale = ctx.Options.Locale
	}
}

func (e *Engine) after(ctx *HookContext) {
	for _, hook := range e.hooks {
		hook.AfterFormat(ctx)
	}
	if ctx.Error != nil {
		e.logger.Debug("numfmt operation failed", "operation", ctx.Operation, "locale", ctx.Locale, "error", ctx.Error)
	}
}
