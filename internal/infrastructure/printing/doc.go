// Package printing renders the HTML sales report and converts it to PDF with
// headless Chrome.
//
// TemplateEngine executes the embedded html/template files under templates/.
// ChromedpRenderer prints HTML through the DevTools protocol, either on a
// locally launched browser or on a remote one given by its websocket URL.
//
//	engine, err := NewTemplateEngine()
//	html, err := engine.RenderHTML(SaleReportTemplate, data)
//	pdf, err := renderer.ConvertHTML(ctx, html, "Reporte de Ventas")
package printing
