package api

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"packaging-report/internal/domain/entities"
	"packaging-report/internal/domain/prompts"
)

type indexData struct {
	Lang      string
	Page      pageText
	MaxImages int
	Analyses  []entities.Analysis
}

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

func (h *AnalysisHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	lang := h.language
	if lang == "" {
		lang = prompts.English
	}

	data := indexData{
		Lang:      string(lang),
		Page:      messagesFor(lang).page,
		MaxImages: entities.MaxImages,
		Analyses:  prompts.Catalog(lang),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		h.log.Error("Failed to render index page", zap.Error(err))
	}
}

const indexHTML = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="UTF-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
<title>{{.Page.Title}}</title>
<script src="https://cdn.tailwindcss.com"></script>
<style>
body { font-family: Inter, system-ui, -apple-system, Segoe UI, Roboto, sans-serif; }
.thumb{width:96px;height:96px;object-fit:cover;border-radius:8px;border:1px solid #e5e7eb}
.loader{border:4px solid #f3f3f3;border-top:4px solid #6366f1;border-radius:50%;width:20px;height:20px;animation:spin 1.2s linear infinite}
@keyframes spin{0%{transform:rotate(0)} 100%{transform:rotate(360deg)} }
</style>
</head>
<body class="bg-gray-50 text-gray-800">
<div class="container mx-auto p-4 md:p-8 max-w-5xl">
<header class="text-center mb-8">
<h1 class="text-3xl md:text-4xl font-bold text-gray-900">{{.Page.Title}}</h1>
<p class="text-gray-600 mt-2">{{.Page.Subtitle}}</p>
</header>
<main class="bg-white p-6 md:p-8 rounded-2xl shadow-lg">
<form id="analyze-form">
<label class="inline-flex items-center px-4 py-2 rounded-full bg-gradient-to-r from-indigo-500 to-blue-500 text-white shadow hover:shadow-lg cursor-pointer">
<svg class="w-5 h-5 mr-2" fill="none" stroke="currentColor" viewBox="0 0 24 24"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M7 16a4 4 0 01-.88-7.903A5 5 0 1115.9 6H17a3 3 0 010 6h-1m-4 5V10m0 0l-2 2m2-2l2 2"/></svg>
<span>{{.Page.Choose}}</span>
<input type="file" id="images" name="images" accept=".jpg,.jpeg,image/jpeg" multiple class="hidden">
</label>
<p id="file-note" class="text-sm text-gray-500 mt-2"></p>
<div id="thumbs" class="flex flex-wrap gap-2 mt-4"></div>
<button type="submit" id="analyze-btn" class="mt-6 w-full py-3 rounded-lg bg-indigo-600 text-white font-semibold hover:bg-indigo-700 disabled:opacity-50 disabled:cursor-not-allowed">{{.Page.Analyze}}</button>
</form>
<div id="status" class="mt-6 flex items-center gap-3 text-gray-700" style="display:none"><div class="loader"></div><span id="status-text"></span></div>
<ul id="warnings" class="mt-4 space-y-2"></ul>
{{range .Analyses}}
<section class="mt-6">
<h2 id="{{.Name}}-title" class="text-lg font-semibold mb-2">{{.Title}}</h2>
<textarea id="{{.Name}}" readonly rows="14" class="result w-full p-3 border rounded-lg bg-gray-50 font-mono text-sm"></textarea>
</section>
{{end}}
</main>
</div>
<script>
const MAX_IMAGES = {{.MaxImages}};
const SELECTED_NOTE = {{.Page.SelectedNote}};
const LIMIT_NOTE = {{.Page.LimitNote}};
const form = document.getElementById('analyze-form');
const input = document.getElementById('images');
const button = document.getElementById('analyze-btn');
const statusBox = document.getElementById('status');
const statusText = document.getElementById('status-text');
const warnings = document.getElementById('warnings');

input.addEventListener('change', () => {
  const thumbs = document.getElementById('thumbs');
  thumbs.innerHTML = '';
  const files = Array.from(input.files);
  const note = files.length > MAX_IMAGES ? LIMIT_NOTE : SELECTED_NOTE;
  document.getElementById('file-note').textContent = note.replace('{n}', files.length).replace('{max}', MAX_IMAGES);
  files.slice(0, MAX_IMAGES).forEach(f => {
    const img = document.createElement('img');
    img.className = 'thumb';
    img.src = URL.createObjectURL(f);
    img.title = f.name;
    thumbs.appendChild(img);
  });
});

function addWarning(text, error) {
  const li = document.createElement('li');
  li.className = error ? 'p-3 rounded-lg bg-red-50 text-red-700' : 'p-3 rounded-lg bg-yellow-50 text-yellow-800';
  li.textContent = text;
  warnings.appendChild(li);
}

function handleEvent(ev) {
  switch (ev.type) {
  case 'state':
    if (ev.message) { statusText.textContent = ev.message; }
    break;
  case 'decode_failure':
    addWarning(ev.message, true);
    break;
  case 'result':
    document.getElementById(ev.name + '-title').textContent = ev.title;
    document.getElementById(ev.name).value = ev.text;
    break;
  case 'error':
    addWarning(ev.message, ev.kind === 'inference_failed');
    break;
  case 'done':
    statusBox.style.display = 'none';
    break;
  }
}

form.addEventListener('submit', async (e) => {
  e.preventDefault();
  if (button.disabled) { return; }
  button.disabled = true;
  warnings.innerHTML = '';
  document.querySelectorAll('textarea.result').forEach(t => { t.value = ''; });
  statusText.textContent = '';
  statusBox.style.display = 'flex';

  const data = new FormData();
  Array.from(input.files).forEach(f => data.append('images', f));

  try {
    const res = await fetch('/analyze', { method: 'POST', body: data });
    if (!res.ok) {
      const body = await res.json().catch(() => ({ error: res.statusText }));
      addWarning(body.error || res.statusText, true);
      return;
    }
    const reader = res.body.getReader();
    const decoder = new TextDecoder();
    let buf = '';
    for (;;) {
      const { value, done } = await reader.read();
      if (done) { break; }
      buf += decoder.decode(value, { stream: true });
      let idx;
      while ((idx = buf.indexOf('\n')) >= 0) {
        const line = buf.slice(0, idx).trim();
        buf = buf.slice(idx + 1);
        if (line) { handleEvent(JSON.parse(line)); }
      }
    }
  } catch (err) {
    addWarning(String(err), true);
  } finally {
    statusBox.style.display = 'none';
    button.disabled = false;
  }
});
</script>
</body>
</html>`
