package http

import (
	"html/template"
	"net/http"

	"github.com/applitest/testrunner-mcp/pkg/catalog"
)

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>MCP Test Runner Proxy Server</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 800px; margin: 0 auto; padding: 2rem; background: #f5f5f5; }
        .container { background: white; border-radius: 8px; padding: 2rem; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #333; border-bottom: 2px solid #007acc; padding-bottom: 0.5rem; }
        h2 { color: #555; margin-top: 2rem; }
        .status { padding: 1rem; background: #e8f5e8; border-radius: 4px; margin: 1rem 0; }
        .endpoint { background: #f8f9fa; padding: 1rem; border-radius: 4px; margin: 0.5rem 0; font-family: monospace; white-space: pre; }
        .list { background: #f0f8ff; padding: 1rem; border-radius: 4px; margin: 1rem 0; }
        .test-section { background: #fff9e6; padding: 1rem; border-radius: 4px; margin: 1rem 0; }
        button { background: #007acc; color: white; border: none; padding: 0.5rem 1rem; border-radius: 4px; cursor: pointer; }
        #testResult { margin-top: 1rem; padding: 1rem; background: #f8f9fa; border-radius: 4px; white-space: pre-wrap; font-family: monospace; }
    </style>
</head>
<body>
<div class="container">
    <h1>Test Runner MCP Server</h1>

    <div class="status">
        <strong>Server:</strong> {{.Info.Name}} {{.Info.Version}}
        <br><strong>Started:</strong> {{.StartedAt}}
    </div>

    <h2>API Endpoints</h2>
    <div class="endpoint">POST /mcp - MCP Protocol Endpoint (streamable HTTP)</div>
    <div class="endpoint">GET /sse, POST /message - MCP Protocol Endpoint (SSE)</div>
    <div class="endpoint">GET /health - Health Check</div>
    <div class="endpoint">GET /api/info - Server Information</div>
    <div class="endpoint">GET /metrics - Prometheus Metrics</div>
    <div class="endpoint">GET / - This Dashboard</div>

    <h2>Available Tools</h2>
    <div class="list"><ul>{{range .Info.Tools}}<li><strong>{{.}}</strong></li>{{end}}</ul></div>

    <h2>Available Resources</h2>
    <div class="list"><ul>{{range .Info.Resources}}<li><strong>{{.}}</strong></li>{{end}}</ul></div>

    <h2>Available Prompts</h2>
    <div class="list"><ul>{{range .Info.Prompts}}<li><strong>{{.}}</strong></li>{{end}}</ul></div>

    <h2>Test Tools</h2>
    <div class="test-section">
        <button onclick="listTools()">List Tools</button>
        <button onclick="checkHealth()">Test Health Check</button>
        <div id="testResult"></div>
    </div>

    <h2>Client Integration</h2>
    <p>To connect an MCP client using the HTTP transport:</p>
    <div class="endpoint">{
  "mcpServers": {
    "test-runner-proxy": {
      "type": "http",
      "url": "{{.BaseURL}}/mcp"
    }
  }
}</div>
    <p>Or for stdio transport, run <code>testrunner-mcp stdio</code>.</p>
</div>

<script>
    async function show(promise) {
        const result = document.getElementById('testResult');
        result.textContent = 'Loading...';
        try {
            const response = await promise;
            result.textContent = JSON.stringify(await response.json(), null, 2);
        } catch (error) {
            result.textContent = 'Error: ' + error.message;
        }
    }
    function listTools() {
        show(fetch('/mcp', {
            method: 'POST',
            headers: { 'Content-Type': 'application/json', 'Accept': 'application/json, text/event-stream' },
            body: JSON.stringify({ jsonrpc: '2.0', id: 1, method: 'tools/list' })
        }));
    }
    function checkHealth() {
        show(fetch('/health'));
    }
</script>
</body>
</html>
`))

type dashboardData struct {
	Info      catalog.Info
	BaseURL   string
	StartedAt string
}

func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := dashboardTemplate.Execute(w, dashboardData{
		Info:      h.info,
		BaseURL:   h.baseURL,
		StartedAt: h.startedAt.Format("2006-01-02 15:04:05 MST"),
	})
	if err != nil {
		h.logger.Error("Dashboard render failed", "err", err)
	}
}
