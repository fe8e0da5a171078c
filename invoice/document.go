package invoice

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"nooralanwar/invoicing/domain"
)

const (
	// DefaultNumber is the number a fresh document starts from and the
	// fallback when the current number cannot be parsed.
	DefaultNumber = "6005"
	DefaultLPO    = "VERBAL"
	DefaultUnit   = "Set"
)

// Item fields accepted by UpdateItem.
const (
	FieldDescription = "description"
	FieldQty         = "qty"
	FieldUnit        = "unit"
	FieldRate        = "rate"
)

var oneHundred = decimal.NewFromInt(100)

// Document is the editable invoice. All mutations go through its methods so
// the derived amounts and the minimum-one-row rule hold no matter how the
// form wires its inputs.
type Document struct {
	company         domain.CompanyInfo
	customer        domain.CustomerInfo
	number          string
	date            string
	deliveryOrderNo string
	lpoNumber       string
	vatRate         decimal.Decimal
	items           []domain.LineItem
	nextItemID      int
	now             func() time.Time
}

type Option func(*Document)

// WithClock overrides the date source used for new and reset documents.
func WithClock(now func() time.Time) Option {
	return func(d *Document) { d.now = now }
}

func WithVATRate(rate decimal.Decimal) Option {
	return func(d *Document) { d.vatRate = rate }
}

func WithNumber(number string) Option {
	return func(d *Document) { d.number = number }
}

// New builds a blank invoice: one empty row, default number, LPO "VERBAL"
// and a 5% VAT rate, dated today.
func New(company domain.CompanyInfo, opts ...Option) *Document {
	d := &Document{
		company:   company,
		number:    DefaultNumber,
		lpoNumber: DefaultLPO,
		vatRate:   decimal.NewFromInt(5),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.date = d.now().Format("2006-01-02")
	d.items = []domain.LineItem{d.blankItem()}
	return d
}

// blankItem hands out ids from a counter that never rewinds, so deleting
// and re-adding rows cannot produce duplicate ids.
func (d *Document) blankItem() domain.LineItem {
	d.nextItemID++
	return domain.LineItem{ID: d.nextItemID, Unit: DefaultUnit, Amount: decimal.Zero}
}

// AddItem appends a blank row and returns it. It always succeeds.
func (d *Document) AddItem() domain.LineItem {
	item := d.blankItem()
	d.items = append(d.items, item)
	return item
}

// RemoveItem deletes the row with the given id. The last remaining row is
// never removed and unknown ids are ignored; it reports whether a row went.
func (d *Document) RemoveItem(id int) bool {
	if len(d.items) <= 1 {
		return false
	}
	for i, item := range d.items {
		if item.ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateItem sets one field on a row. Qty and rate keep the raw string as
// typed; the derived amount is recomputed from their numeric values, with
// anything unparsable counting as zero. Unknown ids and fields are ignored.
func (d *Document) UpdateItem(id int, field string, value string) {
	for i := range d.items {
		if d.items[i].ID != id {
			continue
		}
		switch field {
		case FieldDescription:
			d.items[i].Description = value
		case FieldUnit:
			d.items[i].Unit = value
		case FieldQty:
			d.items[i].Qty = value
		case FieldRate:
			d.items[i].Rate = value
		}
		if field == FieldQty || field == FieldRate {
			d.items[i].Amount = numeric(d.items[i].Qty).Mul(numeric(d.items[i].Rate))
		}
		return
	}
}

// numeric coerces a raw form value to a decimal the way the form always
// has: the longest leading number counts ("1." is 1, "2abc" is 2) and
// anything without one is zero, so data entry is never blocked.
func numeric(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)

	end := 0
	seenDot := false
scan:
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !seenDot:
			seenDot = true
		case (c == '+' || c == '-') && end == 0:
		default:
			break scan
		}
		end++
	}

	v, err := decimal.NewFromString(strings.TrimRight(s[:end], "."))
	if err != nil {
		return decimal.Zero
	}
	return v
}

func (d *Document) SetNumber(number string)      { d.number = number }
func (d *Document) SetDate(date string)          { d.date = date }
func (d *Document) SetDeliveryOrderNo(no string) { d.deliveryOrderNo = no }
func (d *Document) SetLPONumber(no string)       { d.lpoNumber = no }

func (d *Document) SetCustomer(info domain.CustomerInfo) { d.customer = info }

// SetVATRate takes the raw percentage as typed; non-numeric input means 0.
func (d *Document) SetVATRate(raw string) {
	d.vatRate = numeric(raw)
}

func (d *Document) Company() domain.CompanyInfo   { return d.company }
func (d *Document) Customer() domain.CustomerInfo { return d.customer }
func (d *Document) Number() string                { return d.number }
func (d *Document) Date() string                  { return d.date }
func (d *Document) DeliveryOrderNo() string       { return d.deliveryOrderNo }
func (d *Document) LPONumber() string             { return d.lpoNumber }
func (d *Document) VATRate() decimal.Decimal      { return d.vatRate }

// Items returns a snapshot of the rows in display order.
func (d *Document) Items() []domain.LineItem {
	out := make([]domain.LineItem, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Document) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range d.items {
		sum = sum.Add(item.Amount)
	}
	return sum
}

// VAT applies the flat rate to the subtotal. With a single rate this equals
// summing per-item contributions (see ItemVAT).
func (d *Document) VAT() decimal.Decimal {
	return d.Subtotal().Mul(d.vatRate).DivRound(oneHundred, 4)
}

// ItemVAT is one row's share of the VAT under the same flat rate.
func (d *Document) ItemVAT(id int) decimal.Decimal {
	for _, item := range d.items {
		if item.ID == id {
			return item.Amount.Mul(d.vatRate).DivRound(oneHundred, 4)
		}
	}
	return decimal.Zero
}

func (d *Document) Total() decimal.Decimal {
	return d.Subtotal().Add(d.VAT())
}

// NextInvoiceNumber rolls the document over for the next invoice: the
// number is parsed and incremented (falling back to DefaultNumber when it
// is not numeric), the rows collapse to a single blank one, the customer
// fields clear and the date resets to today. The new number is returned.
func (d *Document) NextInvoiceNumber() string {
	next := DefaultNumber
	if n, err := strconv.Atoi(strings.TrimSpace(d.number)); err == nil {
		next = strconv.Itoa(n + 1)
	}
	d.number = next

	d.customer = domain.CustomerInfo{}
	d.deliveryOrderNo = ""
	d.lpoNumber = DefaultLPO
	d.date = d.now().Format("2006-01-02")
	d.items = []domain.LineItem{d.blankItem()}

	return next
}
