package site

// pageTemplate holds the shared layout and the landing and day page bodies.
const pageTemplate = `{{define "head"}}<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
  <script>
    (function() {
      var t = null;
      try { t = localStorage.getItem("theme"); } catch(e) {}
      document.documentElement.setAttribute("data-theme", t === "dark" ? "dark" : "light");
    })();
  </script>
</head>
<body>
  <header class="site-header">
    <a class="brand" href="{{if .BasePath}}{{.BasePath}}{{else}}./{{end}}">{{.Course.Title}}</a>
    <nav class="site-nav">
      {{range .Nav}}<a href="{{.Href}}"{{if .Active}} class="active" aria-current="page"{{end}}>{{.Label}}</a>
      {{end}}
    </nav>
    <div class="search">
      <input type="text" id="search-input" placeholder="Search the course..." autocomplete="off">
      <div class="search-results" id="search-results"></div>
    </div>
    <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">
      <svg class="sun-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
        <circle cx="12" cy="12" r="5"/><line x1="12" y1="1" x2="12" y2="3"/><line x1="12" y1="21" x2="12" y2="23"/><line x1="4.22" y1="4.22" x2="5.64" y2="5.64"/><line x1="18.36" y1="18.36" x2="19.78" y2="19.78"/><line x1="1" y1="12" x2="3" y2="12"/><line x1="21" y1="12" x2="23" y2="12"/><line x1="4.22" y1="19.78" x2="5.64" y2="18.36"/><line x1="18.36" y1="5.64" x2="19.78" y2="4.22"/>
      </svg>
      <svg class="moon-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
        <path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"/>
      </svg>
    </button>
  </header>
  <main class="content">
{{end}}

{{define "foot"}}
  </main>
  <footer class="site-footer">
    <span>{{.Course.Title}}</span>
    <span class="footer-muted">{{.Course.Tagline}}</span>
  </footer>
  <script src="{{.BasePath}}script.js"></script>
  {{if .LiveReload}}<script>
    (function() {
      var proto = location.protocol === "https:" ? "wss://" : "ws://";
      var ws = new WebSocket(proto + location.host + "/livereload");
      ws.onmessage = function(ev) { if (ev.data === "reload") { location.reload(); } };
    })();
  </script>{{end}}
</body>
</html>
{{end}}

{{define "landing"}}{{template "head" .}}
    <section class="hero" data-reveal="hero">
      <h1>{{.Course.Title}}</h1>
      {{with .Course.Tagline}}<p class="tagline">{{.}}</p>{{end}}
      {{with .Course.Description}}<p class="hero-description">{{.}}</p>{{end}}
    </section>
    {{if .Course.Features}}
    <section class="features" data-reveal="features">
      {{range .Course.Features}}
      <div class="feature-card">
        <span class="feature-icon" title="{{.Icon}}">{{icon .Icon}}</span>
        <h3>{{.Title}}</h3>
        <p>{{.Description}}</p>
      </div>
      {{end}}
    </section>
    {{end}}
    <section class="days" data-reveal="days">
      <h2>Curriculum</h2>
      <div class="day-grid">
        {{range .Course.Days}}
        <a class="day-card" href="{{$.BasePath}}{{.Slug}}/">
          <span class="day-number">Day {{.Number}}</span>
          <h3>{{.Title}}</h3>
          {{with .Subtitle}}<p>{{.}}</p>{{end}}
          <span class="day-meta">{{len .Sessions}} sessions</span>
        </a>
        {{end}}
      </div>
    </section>
{{template "foot" .}}{{end}}

{{define "day"}}{{template "head" .}}
  {{with .Day}}
    <section class="hero day-hero" data-reveal="hero">
      <span class="day-number">Day {{.Number}}</span>
      <h1>{{.Title}}</h1>
      {{with .Subtitle}}<p class="tagline">{{.}}</p>{{end}}
    </section>
    <section class="sessions" data-reveal="sessions">
      <h2>Sessions</h2>
      <div class="accordion" id="accordion" data-panels="{{$.BasePath}}panels/{{.Slug}}.json">
        {{range .Sessions}}
        <div class="session" id="session-{{.ID}}" data-session="{{.ID}}">
          <button class="session-header" type="button" aria-expanded="false" aria-controls="session-{{.ID}}-body">
            {{with .Icon}}<span class="session-icon" title="{{.}}">{{icon .}}</span>{{end}}
            <span class="session-title">{{.Title}}</span>
            {{with .Duration}}<span class="session-duration">{{.}}</span>{{end}}
            <span class="chevron" aria-hidden="true">&#9662;</span>
          </button>
          <div class="session-body" id="session-{{.ID}}-body" role="region"></div>
          <template class="session-detail">
            <div class="session-detail-inner">
              {{with .Description}}<p class="session-description">{{.}}</p>{{end}}
              {{if .Topics}}<ul class="checklist">
                {{range .Topics}}<li><span class="done">{{doneGlyph}}</span> {{.}}</li>
                {{end}}
              </ul>{{end}}
              {{$sid := .ID}}
              {{range .DetailedTopics.All}}
              <div class="code-topic">
                <h4>{{.Title}}</h4>
                <div class="code-slot" data-panel="{{$sid}}/{{.Key}}"><span class="code-placeholder">{{placeholder}}</span></div>
              </div>
              {{end}}
            </div>
          </template>
        </div>
        {{end}}
      </div>
    </section>
  {{end}}
    {{if .Summary}}
    <section class="summary" data-reveal="summary">
      <h2>Summary</h2>
      <div class="prose">{{.Summary}}</div>
    </section>
    {{end}}
    {{if .Exercises}}
    <section class="exercises" data-reveal="exercises">
      <h2>Exercises</h2>
      <ol class="exercise-list">
        {{range .Exercises}}<li class="prose">{{.}}</li>
        {{end}}
      </ol>
    </section>
    {{end}}
{{template "foot" .}}{{end}}
`

// cssTemplate is the site stylesheet. Timings come from the motion and
// reveal packages.
const cssTemplate = `/* ============ CSS Variables ============ */
:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --text: #212529;
  --text-secondary: #495057;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --accent-hover: #1c7ed6;
  --accent-light: #e7f5ff;
  --code-bg: #f1f3f5;
  --success: #2f9e44;
  --content-max-width: 960px;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.1);
  --panel-duration: {{.PanelMS}}ms;
  --reveal-duration: {{.RevealMS}}ms;
  --reveal-offset: {{.RevealOffset}}px;
  --chevron-open: {{.ChevronOpen}}deg;
}

[data-theme="dark"] {
  --bg: #1a1b26;
  --bg-secondary: #1f2030;
  --text: #c0caf5;
  --text-secondary: #a9b1d6;
  --text-muted: #565f89;
  --border: #292e42;
  --accent: #7aa2f7;
  --accent-hover: #89b4fa;
  --accent-light: #1a1b2e;
  --code-bg: #1f2030;
  --success: #9ece6a;
  --shadow: 0 1px 3px rgba(0,0,0,0.3);
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.4);
}

/* ============ Reset & Base ============ */
*, *::before, *::after {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}

html {
  font-size: 16px;
  scroll-behavior: smooth;
}

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
  min-height: 100vh;
  display: flex;
  flex-direction: column;
}

a { color: var(--accent); }

/* ============ Header ============ */
.site-header {
  display: flex;
  align-items: center;
  gap: 24px;
  padding: 10px 24px;
  border-bottom: 1px solid var(--border);
  background: var(--bg);
  position: sticky;
  top: 0;
  z-index: 50;
}

.brand {
  font-weight: 700;
  color: var(--accent);
  text-decoration: none;
  white-space: nowrap;
}

.site-nav {
  display: flex;
  gap: 4px;
  flex: 1;
  overflow-x: auto;
}

.site-nav a {
  padding: 4px 10px;
  border-radius: 6px;
  color: var(--text-secondary);
  text-decoration: none;
  font-size: 0.9rem;
  white-space: nowrap;
}

.site-nav a:hover, .site-nav a.active {
  background: var(--accent-light);
  color: var(--accent);
}

.search { position: relative; }

#search-input {
  width: 220px;
  padding: 6px 12px;
  border: 1px solid var(--border);
  border-radius: 6px;
  font-size: 0.85rem;
  background: var(--bg);
  color: var(--text);
  outline: none;
}

#search-input:focus {
  border-color: var(--accent);
  box-shadow: 0 0 0 3px var(--accent-light);
}

.search-results {
  position: absolute;
  right: 0;
  top: 110%;
  width: 320px;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 8px;
  box-shadow: var(--shadow-lg);
  display: none;
}

.search-results.visible { display: block; }

.search-results a {
  display: block;
  padding: 8px 12px;
  color: var(--text);
  text-decoration: none;
  font-size: 0.85rem;
}

.search-results a:hover { background: var(--accent-light); }

.theme-toggle {
  background: none;
  border: 1px solid var(--border);
  border-radius: 6px;
  color: var(--text);
  cursor: pointer;
  padding: 6px;
  display: flex;
}

[data-theme="dark"] .sun-icon { display: inline; }
[data-theme="dark"] .moon-icon { display: none; }
[data-theme="light"] .sun-icon { display: none; }
[data-theme="light"] .moon-icon { display: inline; }

/* ============ Content ============ */
.content {
  flex: 1;
  width: 100%;
  max-width: var(--content-max-width);
  margin: 0 auto;
  padding: 32px 24px 64px;
}

section { margin-bottom: 48px; }

h1 { font-size: 2.4rem; line-height: 1.2; }
h2 { font-size: 1.5rem; margin-bottom: 16px; }

.tagline { font-size: 1.2rem; color: var(--text-secondary); }
.hero-description { margin-top: 12px; color: var(--text-secondary); }
.day-number { color: var(--accent); font-weight: 600; font-size: 0.9rem; text-transform: uppercase; }

.features, .day-grid {
  display: grid;
  grid-template-columns: repeat(auto-fill, minmax(260px, 1fr));
  gap: 16px;
}

.feature-card, .day-card {
  border: 1px solid var(--border);
  border-radius: 8px;
  padding: 20px;
  background: var(--bg-secondary);
  box-shadow: var(--shadow);
}

.day-card { color: var(--text); text-decoration: none; }
.day-card:hover { border-color: var(--accent); box-shadow: var(--shadow-lg); }
.day-meta, .feature-icon { color: var(--text-muted); font-size: 0.85rem; }

/* ============ Accordion ============ */
.session {
  border: 1px solid var(--border);
  border-radius: 8px;
  margin-bottom: 12px;
  background: var(--bg-secondary);
  overflow: hidden;
}

.session-header {
  display: flex;
  align-items: center;
  gap: 12px;
  width: 100%;
  padding: 14px 18px;
  background: none;
  border: none;
  color: var(--text);
  font: inherit;
  text-align: left;
  cursor: pointer;
}

.session-title { flex: 1; font-weight: 600; }
.session-duration { color: var(--text-muted); font-size: 0.85rem; }

.chevron {
  display: inline-block;
  transition: transform var(--panel-duration) ease-in-out;
}

.session.expanded .chevron { transform: rotate(var(--chevron-open)); }

.session-body {
  height: 0;
  opacity: 0;
  overflow: hidden;
  visibility: hidden;
  transition: height var(--panel-duration) ease-in-out, opacity var(--panel-duration) ease-in-out;
}

.session.expanded .session-body { opacity: 1; visibility: visible; }

.session-detail-inner { padding: 0 18px 18px; }
.session-description { color: var(--text-secondary); margin-bottom: 12px; }

.checklist { list-style: none; margin-bottom: 12px; }
.checklist .done { color: var(--success); font-weight: 700; }

.code-topic h4 { margin: 16px 0 8px; font-size: 0.95rem; }

.code-slot {
  background: var(--code-bg);
  border-radius: {{.CornerRadius}};
  font-size: {{.FontSize}};
  min-height: 3rem;
}

.code-placeholder {
  display: block;
  padding: 1rem;
  color: var(--text-muted);
  font-family: "SF Mono", Menlo, Consolas, monospace;
}

/* ============ Prose ============ */
.prose p, .prose ul, .prose ol, .prose pre { margin-bottom: 12px; }
.prose ul, .prose ol { padding-left: 24px; }
.prose code {
  background: var(--code-bg);
  padding: 1px 5px;
  border-radius: 4px;
  font-size: 0.9em;
}
.prose pre { padding: 12px; border-radius: 8px; overflow-x: auto; }
.prose pre code { background: none; padding: 0; }

.exercise-list { padding-left: 24px; }
.exercise-list li { margin-bottom: 12px; }

/* ============ Reveal ============ */
.js [data-reveal] {
  opacity: 0;
  transform: translateY(var(--reveal-offset));
  transition: opacity var(--reveal-duration) ease-out, transform var(--reveal-duration) ease-out;
}

.js [data-reveal].revealed {
  opacity: 1;
  transform: none;
}

/* ============ Footer ============ */
.site-footer {
  display: flex;
  justify-content: space-between;
  padding: 20px 24px;
  border-top: 1px solid var(--border);
  font-size: 0.85rem;
}

.footer-muted { color: var(--text-muted); }

@media (max-width: 720px) {
  .site-header { flex-wrap: wrap; }
  #search-input { width: 100%; }
  h1 { font-size: 1.8rem; }
}

@media (prefers-reduced-motion: reduce) {
  .chevron, .session-body, .js [data-reveal] { transition: none; }
}
`

// jsTemplate drives the accordion, the lazily loaded code panels, the
// section reveal, search and the theme toggle.
const jsTemplate = `(function() {
  "use strict";

  var html = document.documentElement;
  html.classList.add("js");

  var PANEL_MS = {{.PanelMS}};
  var REVEAL_THRESHOLD = {{.Threshold}};
  var REVEAL_MARGIN = "0px 0px -{{.BottomMargin}}px 0px";
  var PLACEHOLDER = {{.Placeholder}};
  var THEME_KEY = {{.ThemeKey}};

  function basePath() {
    var link = document.querySelector("link[rel=stylesheet]");
    return link ? link.getAttribute("href").replace("style.css", "") : "";
  }

  // ===== Theme =====
  function currentTheme() {
    return html.getAttribute("data-theme") === "dark" ? "dark" : "light";
  }

  function setTheme(theme) {
    html.setAttribute("data-theme", theme);
    try { localStorage.setItem(THEME_KEY, theme); } catch(e) {}
    renderMountedPanels();
  }

  var themeToggle = document.getElementById("theme-toggle");
  if (themeToggle) {
    themeToggle.addEventListener("click", function() {
      setTheme(currentTheme() === "dark" ? "light" : "dark");
    });
  }

  // ===== Code panels =====
  // One fetch per page, shared by every panel. A failed fetch leaves every
  // panel on its placeholder until the page is loaded again.
  var accordion = document.getElementById("accordion");
  var chunk = null;
  var chunkPromise = null;

  function loadPanels() {
    if (!chunkPromise) {
      chunkPromise = fetch(accordion.getAttribute("data-panels"))
        .then(function(r) {
          if (!r.ok) { throw new Error("panels: " + r.status); }
          return r.json();
        })
        .then(function(data) { chunk = data; return data; });
      chunkPromise.catch(function(err) {
        if (window.console) { console.warn("code panels unavailable", err); }
      });
    }
    return chunkPromise;
  }

  function renderSlot(slot) {
    var entry = chunk && chunk[slot.getAttribute("data-panel")];
    if (entry) {
      slot.innerHTML = entry[currentTheme()] || entry.light;
    }
  }

  function renderMountedPanels() {
    if (!accordion || !chunk) { return; }
    accordion.querySelectorAll(".code-slot").forEach(renderSlot);
  }

  function mountPanels(body) {
    var slots = body.querySelectorAll(".code-slot");
    if (slots.length === 0) { return; }
    loadPanels().then(function() {
      slots.forEach(function(slot) {
        // Panels unmounted before the load resolved are skipped.
        if (slot.isConnected) { renderSlot(slot); }
      });
    }, function() {});
  }

  // ===== Accordion =====
  // A single expanded id; opening one session closes the other in the same
  // step.
  var expanded = null;
  var sessions = {};

  function expand(el) {
    var body = el.querySelector(".session-body");
    var detail = el.querySelector("template.session-detail");
    body.innerHTML = "";
    body.appendChild(detail.content.cloneNode(true));
    el.classList.add("expanded");
    el.querySelector(".session-header").setAttribute("aria-expanded", "true");
    var target = body.scrollHeight;
    body.style.height = "0px";
    requestAnimationFrame(function() { body.style.height = target + "px"; });
    clearTimeout(el._settle);
    el._settle = setTimeout(function() { body.style.height = "auto"; }, PANEL_MS);
    mountPanels(body);
  }

  function collapse(el) {
    var body = el.querySelector(".session-body");
    body.style.height = body.scrollHeight + "px";
    requestAnimationFrame(function() { body.style.height = "0px"; });
    el.classList.remove("expanded");
    el.querySelector(".session-header").setAttribute("aria-expanded", "false");
    clearTimeout(el._settle);
    el._settle = setTimeout(function() {
      if (!el.classList.contains("expanded")) { body.innerHTML = ""; }
    }, PANEL_MS);
  }

  function toggle(id) {
    var el = sessions[id];
    if (!el) { return; }
    if (expanded === id) {
      collapse(el);
      expanded = null;
      return;
    }
    if (expanded !== null) { collapse(sessions[expanded]); }
    expanded = id;
    expand(el);
  }

  if (accordion) {
    accordion.querySelectorAll(".session").forEach(function(el) {
      var id = el.getAttribute("data-session");
      sessions[id] = el;
      el.querySelector(".session-header").addEventListener("click", function() { toggle(id); });
    });
  }

  // ===== Reveal =====
  var revealTargets = document.querySelectorAll("[data-reveal]");
  if ("IntersectionObserver" in window) {
    var observer = new IntersectionObserver(function(entries) {
      entries.forEach(function(entry) {
        if (entry.isIntersecting) {
          entry.target.classList.add("revealed");
          observer.unobserve(entry.target);
        }
      });
    }, { threshold: REVEAL_THRESHOLD, rootMargin: REVEAL_MARGIN });
    revealTargets.forEach(function(el) { observer.observe(el); });
    window.addEventListener("pagehide", function() { observer.disconnect(); });
  } else {
    revealTargets.forEach(function(el) { el.classList.add("revealed"); });
  }

  // ===== Search =====
  var searchInput = document.getElementById("search-input");
  var searchResults = document.getElementById("search-results");
  var searchIndex = null;

  function escapeHtml(str) {
    var div = document.createElement("div");
    div.textContent = str;
    return div.innerHTML;
  }

  if (searchInput && searchResults) {
    fetch(basePath() + "search-index.json")
      .then(function(r) { return r.json(); })
      .then(function(data) { searchIndex = data; })
      .catch(function() { searchIndex = null; });

    searchInput.addEventListener("input", function() {
      var query = this.value.toLowerCase().trim();
      if (query === "" || !searchIndex) {
        searchResults.classList.remove("visible");
        return;
      }
      var out = "";
      searchIndex.forEach(function(entry) {
        var haystack = (entry.title + " " + entry.summary + " " + entry.content).toLowerCase();
        if (haystack.indexOf(query) !== -1) {
          out += '<a href="' + escapeHtml(basePath() + entry.path) + '">' + escapeHtml(entry.title) + '</a>';
        }
      });
      searchResults.innerHTML = out || '<a>No matches</a>';
      searchResults.classList.add("visible");
    });
  }
})();
`
