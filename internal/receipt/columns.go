package receipt

// Column headers of the output table, in order.
const (
	ColOrderNumber   = "注文番号"
	ColMarketplace   = "モール名"
	ColStoreName     = "店舗名"
	ColPurchaseDate  = "購入日"
	ColPurchaseMonth = "購入月"
	ColTotalAmount   = "支払金額"
	ColMethod1       = "決済1"
	ColAmount1       = "決済額1"
	ColMethod2       = "決済2"
	ColAmount2       = "決済額2"
	ColMethod3       = "決済3"
	ColAmount3       = "決済額3"
	ColOrderItems    = "注文商品"
	ColSourceFile    = "リネーム前ファイル名"
	ColFileName      = "リネーム後ファイル名"
)

// Columns lists the table headers in output order.
var Columns = []string{
	ColOrderNumber,
	ColMarketplace,
	ColStoreName,
	ColPurchaseDate,
	ColPurchaseMonth,
	ColTotalAmount,
	ColMethod1,
	ColAmount1,
	ColMethod2,
	ColAmount2,
	ColMethod3,
	ColAmount3,
	ColOrderItems,
	ColSourceFile,
	ColFileName,
}

// Row returns the display values of the record in Columns order.
func (r Record) Row() []string {
	return []string{
		r.OrderNumber.String(),
		r.Marketplace,
		r.StoreName.String(),
		r.PurchaseDate.String(),
		r.PurchaseMonth.String(),
		r.TotalAmount.String(),
		r.Payments[0].Method.String(),
		r.Payments[0].Amount.String(),
		r.Payments[1].Method.String(),
		r.Payments[1].Amount.String(),
		r.Payments[2].Method.String(),
		r.Payments[2].Amount.String(),
		r.OrderItems.String(),
		r.SourceFile,
		r.FileName.String(),
	}
}
