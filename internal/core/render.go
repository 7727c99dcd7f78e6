package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/coregx/myquery/internal/dialects"
)

type renderMode int

const (
	// modePlaceholder emits :name tokens and fills the bind map.
	modePlaceholder renderMode = iota
	// modeLiteral inlines values; output is for display only.
	modeLiteral
)

type renderedSQL struct {
	sql   string
	binds *Binds
}

// renderContext is the per-render scratch state. Builders never keep it, so
// rendering leaves them untouched.
type renderContext struct {
	mode     renderMode
	ref      string
	binds    *Binds
	reserved map[string]bool
	subs     map[Statement]renderedSQL
}

func newRenderContext(mode renderMode, ref string) *renderContext {
	return &renderContext{
		mode:     mode,
		ref:      ref,
		binds:    newBinds(),
		reserved: make(map[string]bool),
		subs:     make(map[Statement]renderedSQL),
	}
}

// column qualifies a bare column with the statement reference.
func (ctx *renderContext) column(name string) string {
	return qualify(ctx.ref, name)
}

func qualify(ref, name string) string {
	if ref == "" || strings.Contains(name, ".") {
		return name
	}
	return ref + "." + name
}

// reserve marks a caller-chosen name as taken before generated names are assigned.
func (ctx *renderContext) reserve(name string) {
	ctx.reserved[name] = true
}

// generate returns the first free name among base, {ref}__base, base_1, base_2, ...
func (ctx *renderContext) generate(base string) string {
	if !ctx.reserved[base] {
		ctx.reserved[base] = true
		return base
	}

	if ctx.ref != "" {
		qualified := bindName(ctx.ref) + "__" + base
		if !ctx.reserved[qualified] {
			ctx.reserved[qualified] = true
			return qualified
		}
	}

	for i := 1; ; i++ {
		candidate := base + "_" + strconv.Itoa(i)
		if !ctx.reserved[candidate] {
			ctx.reserved[candidate] = true
			return candidate
		}
	}
}

// bind emits the placeholder for value under name, or the literal in literal mode.
func (ctx *renderContext) bind(name string, value interface{}) string {
	if ctx.mode == modeLiteral {
		return formatLiteral(value)
	}
	ctx.binds.set(name, value)
	return ":" + name
}

// sub renders a nested statement once per context and reserves its bind names.
func (ctx *renderContext) sub(stmt Statement) renderedSQL {
	if r, ok := ctx.subs[stmt]; ok {
		return r
	}
	query, binds := stmt.render(ctx.mode)
	r := renderedSQL{sql: query, binds: binds}
	for _, name := range binds.Names() {
		ctx.reserve(name)
	}
	ctx.subs[stmt] = r
	return r
}

// embed renders a nested statement into the current output, merging its binds as-is.
func (ctx *renderContext) embed(stmt Statement) string {
	r := ctx.sub(stmt)
	if ctx.mode == modePlaceholder {
		ctx.binds.merge(r.binds)
	}
	return r.sql
}

// raw emits a caller-written fragment. Params are bound verbatim in placeholder
// mode and substituted into the fragment in literal mode.
func (ctx *renderContext) raw(fragment string, params Params) string {
	if len(params) == 0 {
		return fragment
	}

	values := params.normalized()
	if ctx.mode == modeLiteral {
		return dialects.ReplaceNamed(fragment, values, func(name string) string {
			return formatLiteral(values[name])
		})
	}

	for _, name := range params.sortedNames() {
		ctx.binds.set(name, values[name])
	}
	return fragment
}

// bindName turns a column reference into a placeholder name (t2.col → t2__col).
func bindName(column string) string {
	return strings.ReplaceAll(column, ".", "__")
}

// formatLiteral renders a value for bound (display) output. Strings are quoted
// without escaping; the result must never be executed.
func formatLiteral(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + v + "'"
	case []byte:
		return "'" + string(v) + "'"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return "'" + v.Format("2006-01-02 15:04:05") + "'"
	default:
		return "'" + fmt.Sprintf("%v", v) + "'"
	}
}

// joinNonEmpty joins parts with sep, skipping empty strings.
func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
