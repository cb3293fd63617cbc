package views

import (
	"context"

	"neurowatch/views/components"

	"github.com/a-h/templ"
)

const AppName = "NeuroWatch"

const (
	htmxSrc    = "https://unpkg.com/htmx.org@2.0.4"
	echartsSrc = "https://cdn.jsdelivr.net/npm/echarts@5.5.1/dist/echarts.min.js"
)

// PageTitle appends the product name unless the title already carries it.
func PageTitle(title string) string {
	if title == "" || title == AppName {
		return AppName
	}
	return title + " | " + AppName
}

// Layout renders the page shell around its children. The CSRF token rides
// along on every HTMX request through hx-headers.
func Layout(title, csrfToken, cspNonce string) templ.Component {
	return components.Func(func(ctx context.Context, b *components.Builder) {
		b.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.Raw("<meta").Attr("name", "htmx-config").Attr("content", htmxConfig).Raw(">")
		b.Raw("<title>").Text(PageTitle(title)).Raw("</title>")
		b.Raw(`<link rel="stylesheet" href="/assets/css/style.css">`)
		b.Raw("<script").Attr("src", htmxSrc).Attr("nonce", cspNonce).Raw("></script>")
		b.Raw("<script").Attr("src", echartsSrc).Attr("nonce", cspNonce).Raw("></script>")
		b.Raw("</head><body").Attr("hx-headers", `{"X-CSRF-Token": "`+csrfToken+`"}`).Raw(">")
		b.Raw(`<main id="content">`).Render(ctx, templ.GetChildren(ctx)).Raw("</main>")
		b.Raw("<script").Attr("nonce", cspNonce).Raw(">").Raw(pageScript).Raw("</script>")
		b.Raw("</body></html>")
	})
}

// htmxConfig lets 4xx fragments swap in, so inline validation messages reach the page.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"4..","swap":true,"error":false},{"code":"...","swap":false,"error":true}]}`

// pageScript draws charts after every swap and wires the upload drop zone.
const pageScript = `
(function () {
  function renderCharts(root) {
    if (!window.echarts) return;
    root.querySelectorAll("[data-chart]").forEach(function (el) {
      var chart = echarts.getInstanceByDom(el) || echarts.init(el);
      chart.setOption(JSON.parse(el.dataset.chart), true);
    });
  }
  document.addEventListener("DOMContentLoaded", function () { renderCharts(document); });
  document.addEventListener("htmx:afterSettle", function (e) { renderCharts(e.detail.elt || document); });
  window.addEventListener("resize", function () {
    document.querySelectorAll("[data-chart]").forEach(function (el) {
      var chart = window.echarts && echarts.getInstanceByDom(el);
      if (chart) chart.resize();
    });
  });

  document.addEventListener("dragover", function (e) {
    var zone = e.target.closest && e.target.closest(".dropzone");
    if (!zone) return;
    e.preventDefault();
    zone.classList.add("dragging");
  });
  document.addEventListener("dragleave", function (e) {
    var zone = e.target.closest && e.target.closest(".dropzone");
    if (zone) zone.classList.remove("dragging");
  });
  document.addEventListener("drop", function (e) {
    var zone = e.target.closest && e.target.closest(".dropzone");
    if (!zone) return;
    e.preventDefault();
    zone.classList.remove("dragging");
    var input = zone.querySelector("input[type=file]");
    input.files = e.dataTransfer.files;
    htmx.trigger(input.form, "submit");
  });
})();
`
