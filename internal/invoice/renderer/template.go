package renderer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/tair/pos-backoffice/internal/invoice/domain"
)

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Number}}</title>
<style>
body { font-family: sans-serif; font-size: 12px; margin: 0; }
h1 { font-size: 18px; margin-bottom: 4px; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
th, td { border-bottom: 1px solid #ddd; padding: 6px; text-align: left; }
td.num, th.num { text-align: right; }
tfoot td { font-weight: bold; border-bottom: none; }
</style>
</head>
<body>
<h1>Invoice {{.Number}}</h1>
<div>Order #{{.OrderID}}</div>
<div>Date {{.CreatedAt.UTC.Format "2006-01-02 15:04"}} UTC</div>
<table>
<thead>
<tr><th>#</th><th>Barcode</th><th>Product</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Amount</th></tr>
</thead>
<tbody>
{{range $i, $item := .Items}}<tr><td>{{inc $i}}</td><td>{{$item.Barcode}}</td><td>{{$item.ProductName}}</td><td class="num">{{$item.Quantity}}</td><td class="num">{{$item.SellingPrice.StringFixed 2}}</td><td class="num">{{$item.Amount.StringFixed 2}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="3">Total</td><td class="num">{{.TotalQuantity}}</td><td></td><td class="num">{{.Total.StringFixed 2}}</td></tr>
</tfoot>
</table>
</body>
</html>
`

var tmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(invoiceTemplate))

// HTML renders the printable invoice page
func HTML(invoice *domain.Invoice) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, invoice); err != nil {
		return "", fmt.Errorf("failed to execute invoice template: %w", err)
	}
	return buf.String(), nil
}
