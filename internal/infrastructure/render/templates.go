package render

import "html/template"

// Shared stylesheet for both documents. Gotenberg renders with headless
// chromium, so plain CSS is enough.
const documentStyle = `
  body { font-family: Helvetica, Arial, sans-serif; color: #1f2933; margin: 40px; }
  h1 { font-size: 22px; margin-bottom: 0; }
  .meta { color: #52606d; font-size: 12px; margin-bottom: 24px; }
  .contact { margin-bottom: 24px; font-size: 13px; line-height: 1.5; }
  table { width: 100%; border-collapse: collapse; font-size: 13px; }
  th { text-align: left; border-bottom: 2px solid #1f2933; padding: 6px 4px; }
  td { border-bottom: 1px solid #d3dce6; padding: 6px 4px; }
  td.num, th.num { text-align: right; }
  tr.total td { border-bottom: none; font-weight: bold; padding-top: 12px; }
  .notes { margin-top: 24px; font-size: 12px; color: #52606d; }
`

var quotationTemplate = template.Must(template.New("quotation").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>` + documentStyle + `</style></head>
<body>
  <h1>Quotation {{.QuoteNumber}}</h1>
  <div class="meta">Issued {{.CreatedAt.Format "2 January 2006"}} &middot; Status: {{.Status}}</div>
  <div class="contact">
    <strong>{{.ClientName}}</strong><br>
    {{if .CompanyName}}{{.CompanyName}}<br>{{end}}
    {{if .Address}}{{.Address}}<br>{{end}}
    {{if .Email}}{{.Email}}<br>{{end}}
    {{if .Phone}}{{.Phone}}{{end}}
  </div>
  <table>
    <tr><th>Description</th><th class="num">Qty</th><th class="num">Unit price</th><th class="num">Amount</th></tr>
    {{range .Items}}
    <tr>
      <td>{{.Description}}</td>
      <td class="num">{{.Quantity}}</td>
      <td class="num">{{printf "%.2f" .UnitPrice}}</td>
      <td class="num">{{printf "%.2f" .Amount}}</td>
    </tr>
    {{end}}
    <tr class="total"><td colspan="3">Total</td><td class="num">{{printf "%.2f" .TotalAmount}}</td></tr>
  </table>
  {{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}
</body>
</html>`))

var invoiceTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>` + documentStyle + `</style></head>
<body>
  <h1>Invoice {{.InvoiceNumber}}</h1>
  <div class="meta">Issued {{.CreatedAt.Format "2 January 2006"}}{{if .QuoteNumber}} &middot; Quotation {{.QuoteNumber}}{{end}} &middot; Status: {{.Status}}</div>
  <div class="contact">
    <strong>{{.ClientName}}</strong><br>
    {{if .CompanyName}}{{.CompanyName}}<br>{{end}}
    {{if .Address}}{{.Address}}<br>{{end}}
    {{if .Email}}{{.Email}}<br>{{end}}
    {{if .Phone}}{{.Phone}}{{end}}
  </div>
  <table>
    <tr><th>Description</th><th class="num">Qty</th><th class="num">Unit price</th><th class="num">Amount</th></tr>
    {{range .Items}}
    <tr>
      <td>{{.Description}}</td>
      <td class="num">{{.Quantity}}</td>
      <td class="num">{{printf "%.2f" .UnitPrice}}</td>
      <td class="num">{{printf "%.2f" .Amount}}</td>
    </tr>
    {{end}}
    <tr class="total"><td colspan="3">Total due</td><td class="num">{{printf "%.2f" .TotalAmount}}</td></tr>
  </table>
</body>
</html>`))
