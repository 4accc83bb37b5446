package validator

import (
	"os"
	"sync"

	"github.com/devos-project/devosctl/internal/agentcfg"
	"github.com/devos-project/devosctl/internal/config"
	"github.com/devos-project/devosctl/internal/toolschema"
)

// Context gives checks access to the repository under validation.
// Parsed configuration files are memoized so every check sees the same
// parse result and a malformed file is reported exactly once, by its
// syntax check.
type Context struct {
	Layout config.Layout

	agentsOnce sync.Once
	agentsDoc  *agentcfg.Document
	agentsErr  error

	toolsOnce sync.Once
	toolsDoc  *toolschema.Schema
	toolsErr  error

	fileMu    sync.Mutex
	fileCache map[string][]byte
}

// NewContext creates a check context for the repository at root.
func NewContext(layout config.Layout) *Context {
	return &Context{
		Layout:    layout,
		fileCache: make(map[string][]byte),
	}
}

// Agents returns the parsed agents.yaml. On parse failure the error is
// wrapped as a *ParseError naming the file.
func (c *Context) Agents() (*agentcfg.Document, error) {
	c.agentsOnce.Do(func() {
		doc, err := agentcfg.Parse(c.Layout.Abs(config.AgentsFile))
		if err != nil {
			c.agentsErr = &ParseError{File: config.AgentsFile, Err: err}
			return
		}
		c.agentsDoc = doc
	})
	return c.agentsDoc, c.agentsErr
}

// Tools returns the parsed Tool-schema.json. On parse failure the
// error is wrapped as a *ParseError naming the file.
func (c *Context) Tools() (*toolschema.Schema, error) {
	c.toolsOnce.Do(func() {
		schema, err := toolschema.Parse(c.Layout.Abs(config.ToolSchemaFile))
		if err != nil {
			c.toolsErr = &ParseError{File: config.ToolSchemaFile, Err: err}
			return
		}
		c.toolsDoc = schema
	})
	return c.toolsDoc, c.toolsErr
}

// ReadFile returns the content of a repo-relative file, cached for the
// lifetime of the run.
func (c *Context) ReadFile(rel string) ([]byte, error) {
	c.fileMu.Lock()
	defer c.fileMu.Unlock()

	if content, ok := c.fileCache[rel]; ok {
		return content, nil
	}

	content, err := os.ReadFile(c.Layout.Abs(rel))
	if err != nil {
		return nil, err
	}
	c.fileCache[rel] = content
	return content, nil
}
