package server

import (
	"html/template"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// The shell holds no widget logic: it forwards pointer events over the
// websocket and swaps in whatever frame the server renders.
var pageTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Trust Graph</title>
  <style>
    body {
      font-family: 'Helvetica Neue', Arial, sans-serif;
      margin: 0;
      padding: 20px;
      background: #0f1420;
      color: #eaeef3;
    }
    .container {
      max-width: {{.Width}}px;
      margin: 0 auto;
    }
    h1 {
      font-size: 20px;
      border-bottom: 1px solid #2d3748;
      padding-bottom: 10px;
    }
    #trust-graph {
      position: relative;
      width: {{.Width}}px;
      height: {{.Height}}px;
      border-radius: 8px;
      overflow: hidden;
      cursor: default;
    }
    #tooltip {
      position: absolute;
      background: rgba(0, 0, 0, 0.95);
      color: white;
      padding: 10px 14px;
      border-radius: 8px;
      font-size: 13px;
      pointer-events: none;
      opacity: 0;
      transition: opacity 0.2s ease;
      z-index: 10;
    }
    #detail {
      margin-top: 12px;
      padding: 12px;
      background: #1a202c;
      border-radius: 8px;
      font-size: 13px;
      white-space: pre;
      display: none;
    }
  </style>
</head>
<body>
  <div class="container">
    <h1>Trust Graph</h1>
    <div id="trust-graph"></div>
    <div id="tooltip"></div>
    <div id="detail"></div>
  </div>
  <script>
    const session = {{.SessionID}};
    const surface = document.getElementById('trust-graph');
    const tooltip = document.getElementById('tooltip');
    const detail = document.getElementById('detail');
    const proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
    const ws = new WebSocket(proto + '//' + location.host + '/ws?session=' + session);

    ws.onmessage = (msg) => {
      const frame = JSON.parse(msg.data);
      surface.innerHTML = frame.svg;
      const t = frame.tooltip;
      if (t && t.visible && !t.fading) {
        tooltip.innerHTML = '<strong>' + t.title + '</strong>' +
          (t.lines || []).map(l => '<br>' + l).join('');
        tooltip.style.left = t.x + 'px';
        tooltip.style.top = t.y + 'px';
        tooltip.style.opacity = '1';
      } else {
        tooltip.style.opacity = '0';
      }
    };

    function at(e) {
      const r = surface.getBoundingClientRect();
      return {x: e.clientX - r.left, y: e.clientY - r.top};
    }
    function send(type, e) {
      if (ws.readyState !== WebSocket.OPEN) return;
      const p = e ? at(e) : {x: 0, y: 0};
      ws.send(JSON.stringify({type: type, x: p.x, y: p.y}));
    }

    surface.addEventListener('mousedown', (e) => { e.preventDefault(); send('down', e); });
    document.addEventListener('mousemove', (e) => send('move', e));
    document.addEventListener('mouseup', () => send('up'));
    surface.addEventListener('mouseleave', (e) => send('leave', e));

    surface.addEventListener('click', (e) => {
      const id = e.target.getAttribute && e.target.getAttribute('data-node');
      if (!id) { detail.style.display = 'none'; return; }
      fetch('/api/node/' + encodeURIComponent(id) + '?session=' + session)
        .then(r => r.json())
        .then(d => {
          detail.textContent = JSON.stringify(d, null, 2);
          detail.style.display = 'block';
        });
    });
  </script>
</body>
</html>
`))

type pageData struct {
	SessionID string
	Width     float64
	Height    float64
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	err := pageTemplate.Execute(w, pageData{
		SessionID: uuid.New().String(),
		Width:     s.cfg.Width,
		Height:    s.cfg.Height,
	})
	if err != nil {
		s.log.Error("page render failed", zap.Error(err))
	}
}
