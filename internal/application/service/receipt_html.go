package service

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/ardentsoft/stroypos/internal/domain/entity"
	"github.com/ardentsoft/stroypos/pkg/money"
)

// receiptHTML mirrors the thermal layout as a narrow monospace column, for
// the on-screen preview dialog and for registers that print through a
// regular office printer instead of a thermal one.
var receiptHTML = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": money.Format,
	"sum":   money.FormatSum,
}).Parse(`<!DOCTYPE html>
<html lang="uz">
<head>
<meta charset="utf-8">
<title>Chek {{.ReceiptNo}}</title>
<style>
  body { font-family: "Courier New", monospace; font-size: 12px; width: 260px; margin: 0 auto; }
  .center { text-align: center; }
  .title { font-size: 18px; font-weight: bold; }
  .total { font-size: 16px; font-weight: bold; }
  .row { display: flex; justify-content: space-between; }
  hr { border: none; border-top: 1px dashed #000; }
  hr.heavy { border-top: 1px solid #000; }
  @media print { body { width: 58mm; } }
</style>
</head>
<body>
<div class="center title">{{.Header.StoreName}}</div>
{{- if .Header.Tagline}}
<div class="center">{{.Header.Tagline}}</div>
{{- end}}
<hr>
<div>Sotuvchi : {{.Seller}}</div>
<div>Mijoz &nbsp;&nbsp;&nbsp;: {{.Customer}}</div>
<div>Sana &nbsp;&nbsp;&nbsp;&nbsp;: {{.Date}}</div>
<div>Chek &#8470; &nbsp;&nbsp;: {{.ReceiptNo}}</div>
<hr>
{{- range .Items}}
<div>{{.Name}}</div>
<div class="row"><span>&nbsp;&nbsp;{{.Quantity}} x {{money .Price}}</span><span>{{money .Total}}</span></div>
{{- end}}
<hr>
{{- if gt .Discount 0}}
<div class="row"><span>Chegirma:</span><span>-{{money .Discount}}</span></div>
{{- end}}
{{- if .PaymentMethod}}
<div>To'lov: {{.PaymentMethod.Label}}</div>
{{- end}}
<hr class="heavy">
<div class="center total">JAMI: {{sum .Total}}</div>
{{- if .Notes}}
<div>Izoh: {{.Notes}}</div>
{{- end}}
<hr>
<div class="center">Xaridingiz uchun rahmat!</div>
{{- range .Header.Phones}}
<div class="center">{{.}}</div>
{{- end}}
{{- if .Header.SystemName}}
<div class="center"><b>{{.Header.SystemName}}</b></div>
{{- end}}
{{- if .Header.Website}}
<div class="center">{{.Header.Website}}</div>
{{- end}}
</body>
</html>
`))

// FormatHTML renders a receipt as a standalone HTML page with the same
// content as the thermal rendering.
func (s *PrinterService) FormatHTML(r *entity.Receipt) ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptHTML.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("render receipt html: %w", err)
	}
	return buf.Bytes(), nil
}
