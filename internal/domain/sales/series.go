package sales

// Series describe una serie de documentos de venta. Las dos series (fiscal
// "ventas" y no fiscal "ventasx") comparten la misma lógica de escritura y
// numeración; solo cambian las tablas y la presencia de IVA. Un único motor
// parametrizado por Series evita duplicar los dos módulos.
type Series struct {
	Key       string // identificador de la serie y segmento de ruta
	SaleTable string // tabla de cabeceras
	ItemTable string // tabla de líneas
	HasTax    bool   // la serie fiscal lleva IVA; la no fiscal no
}

// Las series son valores fijos del sistema: los nombres de tabla nunca
// provienen de entrada del usuario.
var (
	Fiscal    = Series{Key: "ventas", SaleTable: "ventas", ItemTable: "venta_items", HasTax: true}
	NonFiscal = Series{Key: "ventasx", SaleTable: "ventasx", ItemTable: "ventasx_items", HasTax: false}
)

// ByKey devuelve la serie para un segmento de ruta.
func ByKey(key string) (Series, bool) {
	switch key {
	case Fiscal.Key:
		return Fiscal, true
	case NonFiscal.Key:
		return NonFiscal, true
	}
	return Series{}, false
}
