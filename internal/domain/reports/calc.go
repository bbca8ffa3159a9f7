package reports

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
)

const isoDate = "2006-01-02"

var (
	hundred   = decimal.NewFromInt(100)
	classALim = decimal.NewFromInt(80)
	classBLim = decimal.NewFromInt(95)
)

// --- Calendar ---

// calendarDate reinterprets the calendar date of t in loc.
func calendarDate(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// dayOf returns midnight of the day t falls on in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	return calendarDate(t.In(loc), loc)
}

// bucketStart returns the first day of the bucket containing t.
func bucketStart(t time.Time, g Granularity, loc *time.Location) time.Time {
	d := dayOf(t, loc)
	switch g {
	case Week:
		return d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
	case Month:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, loc)
	}
	return d
}

// daysBetween counts calendar days from a to b.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// dateRange converts inclusive calendar dates into a half-open instant range.
func dateRange(from, to *time.Time, loc *time.Location) Range {
	var r Range
	if from != nil {
		f := calendarDate(*from, loc)
		r.From = &f
	}
	if to != nil {
		t := calendarDate(*to, loc).AddDate(0, 0, 1)
		r.To = &t
	}
	return r
}

func yearMonth(t time.Time, loc *time.Location) int {
	t = t.In(loc)
	return t.Year()*12 + int(t.Month()) - 1
}

// --- Accumulators ---

type acc struct {
	qty    int64
	amount types.Money
	docs   map[id.ID]struct{}
}

func newAcc() *acc {
	return &acc{amount: types.Zero(), docs: make(map[id.ID]struct{})}
}

func (a *acc) add(l Line) {
	a.qty += l.Count
	a.amount = a.amount.Add(l.Amount())
	a.docs[l.DocumentID] = struct{}{}
}

func (a *acc) totals(scale int32) Totals {
	return Totals{
		TotalQty:    a.qty,
		TotalAmount: types.RoundMoney(a.amount, scale),
		Orders:      len(a.docs),
	}
}

func (a *acc) metric(m Metric) decimal.Decimal {
	switch m {
	case MetricQty:
		return decimal.NewFromInt(a.qty)
	case MetricOrders:
		return decimal.NewFromInt(int64(len(a.docs)))
	}
	return a.amount
}

func total(lines []Line) *acc {
	a := newAcc()
	for _, l := range lines {
		a.add(l)
	}
	return a
}

func avgMoney(amount types.Money, n int, scale int32) *types.Money {
	v := types.DivOrNil(amount, decimal.NewFromInt(int64(n)))
	if v == nil {
		return nil
	}
	r := types.RoundMoney(*v, scale)
	return &r
}

func roundedPtr(m types.Money, scale int32) *types.Money {
	r := types.RoundMoney(m, scale)
	return &r
}

// --- Time series ---

// series buckets lines by creation date. shift, when set, moves each instant
// before bucketing; compare reports use it to align the previous range.
func series(lines []Line, g Granularity, loc *time.Location, shift func(time.Time) time.Time) (map[string]*acc, []string) {
	buckets := make(map[string]*acc)
	for _, l := range lines {
		t := l.CreatedAt.In(loc)
		if shift != nil {
			t = shift(t)
		}
		key := bucketStart(t, g, loc).Format(isoDate)
		a, ok := buckets[key]
		if !ok {
			a = newAcc()
			buckets[key] = a
		}
		a.add(l)
	}
	return buckets, sortedKeys(buckets)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func salesVolume(lines []Line, g Granularity, opts Options) ([]Bucket, Totals) {
	buckets, keys := series(lines, g, opts.Location, nil)
	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, Bucket{Period: k, Totals: buckets[k].totals(opts.MoneyScale)})
	}
	return out, total(lines).totals(opts.MoneyScale)
}

// compareWindow is the previous range and the shift aligning it to the current one.
type compareWindow struct {
	from, to time.Time
	shift    func(time.Time) time.Time
	unshift  func(time.Time) time.Time
}

func previousWindow(curFrom, curTo time.Time, mode string) compareWindow {
	if mode == "yoy" {
		return compareWindow{
			from:    addYears(curFrom, -1),
			to:      addYears(curTo, -1),
			shift:   func(t time.Time) time.Time { return addYears(t, 1) },
			unshift: func(t time.Time) time.Time { return addYears(t, -1) },
		}
	}
	length := daysBetween(curFrom, curTo)
	prevTo := curFrom.AddDate(0, 0, -1)
	offset := length + 1
	return compareWindow{
		from:    prevTo.AddDate(0, 0, -length),
		to:      prevTo,
		shift:   func(t time.Time) time.Time { return t.AddDate(0, 0, offset) },
		unshift: func(t time.Time) time.Time { return t.AddDate(0, 0, -offset) },
	}
}

// addYears shifts t by n calendar years, clamping Feb 29 to Feb 28 instead
// of rolling over into March.
func addYears(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	if last := time.Date(y+n, m+1, 0, 0, 0, 0, 0, t.Location()).Day(); d > last {
		d = last
	}
	return time.Date(y+n, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func diffTotals(cur, prev Totals) Diff {
	return Diff{
		Qty: IntDelta{
			Current:  cur.TotalQty,
			Previous: prev.TotalQty,
			Delta:    cur.TotalQty - prev.TotalQty,
			Pct:      types.PctChangeInt(cur.TotalQty, prev.TotalQty),
		},
		Amount: MoneyDelta{
			Current:  cur.TotalAmount,
			Previous: prev.TotalAmount,
			Delta:    cur.TotalAmount.Sub(prev.TotalAmount),
			Pct:      types.PctChange(cur.TotalAmount, prev.TotalAmount),
		},
		Orders: IntDelta{
			Current:  int64(cur.Orders),
			Previous: int64(prev.Orders),
			Delta:    int64(cur.Orders - prev.Orders),
			Pct:      types.PctChangeInt(int64(cur.Orders), int64(prev.Orders)),
		},
	}
}

func compareSeries(cur, prev []Line, g Granularity, w compareWindow, opts Options) (Diff, []PeriodDiff) {
	loc := opts.Location
	curBuckets, _ := series(cur, g, loc, nil)
	prevBuckets, _ := series(prev, g, loc, w.shift)

	keys := make(map[string]struct{}, len(curBuckets)+len(prevBuckets))
	for k := range curBuckets {
		keys[k] = struct{}{}
	}
	for k := range prevBuckets {
		keys[k] = struct{}{}
	}

	empty := newAcc().totals(opts.MoneyScale)
	out := make([]PeriodDiff, 0, len(keys))
	for _, k := range sortedKeys(keys) {
		c, p := empty, empty
		if a, ok := curBuckets[k]; ok {
			c = a.totals(opts.MoneyScale)
		}
		if a, ok := prevBuckets[k]; ok {
			p = a.totals(opts.MoneyScale)
		}
		start, _ := time.ParseInLocation(isoDate, k, loc)
		out = append(out, PeriodDiff{
			Period:         k,
			PreviousPeriod: w.unshift(start).Format(isoDate),
			Diff:           diffTotals(c, p),
		})
	}
	summary := diffTotals(total(cur).totals(opts.MoneyScale), total(prev).totals(opts.MoneyScale))
	return summary, out
}

// --- Grouping ---

type group struct {
	key  string
	id   *id.ID
	name string
	line Line // first line of the group, for product attributes
	acc  *acc
}

func groupLines(lines []Line, keyFn func(Line) (*id.ID, string)) []*group {
	index := make(map[string]*group)
	var out []*group
	for _, l := range lines {
		gid, name := keyFn(l)
		key := ""
		if gid != nil {
			key = gid.String()
		}
		g, ok := index[key]
		if !ok {
			g = &group{key: key, id: gid, name: name, line: l, acc: newAcc()}
			index[key] = g
			out = append(out, g)
		}
		g.acc.add(l)
	}
	return out
}

// sortGroups orders by metric, breaking ties by name then key.
func sortGroups(groups []*group, m Metric, ascending bool) {
	sort.SliceStable(groups, func(i, j int) bool {
		if c := groups[i].acc.metric(m).Cmp(groups[j].acc.metric(m)); c != 0 {
			if ascending {
				return c < 0
			}
			return c > 0
		}
		if groups[i].name != groups[j].name {
			return groups[i].name < groups[j].name
		}
		return groups[i].key < groups[j].key
	})
}

func byProduct(l Line) (*id.ID, string) {
	pid := l.ProductID
	return &pid, l.ProductName
}

func byCategory(l Line) (*id.ID, string) { return l.CategoryID, l.CategoryName }
func byClient(l Line) (*id.ID, string)   { return l.ClientID, l.ClientName }
func byWarehouse(l Line) (*id.ID, string) {
	return l.WarehouseID, l.WarehouseName
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func rankProducts(lines []Line, m Metric, limit int, ascending bool, scale int32) []ProductRow {
	groups := groupLines(lines, byProduct)
	sortGroups(groups, m, ascending)
	if len(groups) > limit {
		groups = groups[:limit]
	}
	out := make([]ProductRow, len(groups))
	for i, g := range groups {
		out[i] = ProductRow{
			Rank:         i + 1,
			ProductID:    g.line.ProductID,
			ProductName:  g.line.ProductName,
			UnitType:     g.line.UnitType,
			CategoryID:   g.line.CategoryID,
			CategoryName: g.line.CategoryName,
			Totals:       g.acc.totals(scale),
		}
	}
	return out
}

// dealerRows groups by client. With shares set, every row carries its share
// of the metric total and its index against the leader.
func dealerRows(lines []Line, m Metric, shares bool, scale int32) []DealerRow {
	groups := groupLines(lines, byClient)
	sortGroups(groups, m, false)

	sum := decimal.Zero
	for _, g := range groups {
		sum = sum.Add(g.acc.metric(m))
	}
	leader := decimal.Zero
	if len(groups) > 0 {
		leader = groups[0].acc.metric(m)
	}

	out := make([]DealerRow, len(groups))
	for i, g := range groups {
		row := DealerRow{
			ClientID:   g.id,
			DealerName: g.name,
			AvgCheck:   avgMoney(g.acc.amount, len(g.acc.docs), scale),
			Totals:     g.acc.totals(scale),
		}
		if shares {
			v := g.acc.metric(m)
			row.SharePct = types.Share(v, sum)
			row.Index = types.Share(v, leader)
		}
		out[i] = row
	}
	return out
}

// shareRows groups lines and sets each row's share of the metric total
// across all groups, including those cut by limit.
func shareRows(lines []Line, keyFn func(Line) (*id.ID, string), m Metric, limit int, scale int32) []ShareRow {
	groups := groupLines(lines, keyFn)
	sortGroups(groups, m, false)

	sum := decimal.Zero
	for _, g := range groups {
		sum = sum.Add(g.acc.metric(m))
	}
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	out := make([]ShareRow, len(groups))
	for i, g := range groups {
		out[i] = ShareRow{
			ID:       g.id,
			Name:     g.name,
			SharePct: types.Share(g.acc.metric(m), sum),
			Totals:   g.acc.totals(scale),
		}
	}
	return out
}

// abcClass classifies by cumulative share: A up to 80%, B up to 95%, C after.
func abcClass(cumulative, total types.Money) ABCClass {
	if total.IsZero() {
		return ClassC
	}
	pct := cumulative.Mul(hundred).Div(total)
	switch {
	case pct.LessThanOrEqual(classALim):
		return ClassA
	case pct.LessThanOrEqual(classBLim):
		return ClassB
	}
	return ClassC
}

func assortment(lines []Line, groupBy string, scale int32) []AssortmentRow {
	keyFn := byProduct
	if groupBy == "category" {
		keyFn = byCategory
	}
	groups := groupLines(lines, keyFn)
	sortGroups(groups, MetricAmount, false)

	sum := types.Zero()
	for _, g := range groups {
		sum = sum.Add(g.acc.amount)
	}

	cumulative := types.Zero()
	out := make([]AssortmentRow, len(groups))
	for i, g := range groups {
		cumulative = cumulative.Add(g.acc.amount)
		out[i] = AssortmentRow{
			ID:            g.id,
			Name:          g.name,
			SharePct:      types.Share(g.acc.amount, sum),
			CumulativePct: types.Share(cumulative, sum),
			ABC:           abcClass(cumulative, sum),
			Totals:        g.acc.totals(scale),
		}
	}
	return out
}

// --- Orders ---

func orderSeries(orders []Header, g Granularity, opts Options) ([]OrderBucket, OrderBucket) {
	type bucket struct {
		n      int
		amount types.Money
	}
	buckets := make(map[string]*bucket)
	all := &bucket{amount: types.Zero()}
	for _, o := range orders {
		key := bucketStart(o.CreatedAt, g, opts.Location).Format(isoDate)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{amount: types.Zero()}
			buckets[key] = b
		}
		b.n++
		b.amount = b.amount.Add(o.TotalAmount)
		all.n++
		all.amount = all.amount.Add(o.TotalAmount)
	}
	render := func(period string, b *bucket) OrderBucket {
		return OrderBucket{
			Period: period,
			Orders: b.n,
			Amount: types.RoundMoney(b.amount, opts.MoneyScale),
			Avg:    avgMoney(b.amount, b.n, opts.MoneyScale),
		}
	}
	out := make([]OrderBucket, 0, len(buckets))
	for _, k := range sortedKeys(buckets) {
		out = append(out, render(k, buckets[k]))
	}
	return out, render("", all)
}

func returnsSeries(orders, cancelledOutcomes []Header, cancelled string, include string, g Granularity, loc *time.Location) ([]ReturnsBucket, ReturnsBucket) {
	buckets := make(map[string]*ReturnsBucket)
	get := func(t time.Time) *ReturnsBucket {
		key := bucketStart(t, g, loc).Format(isoDate)
		b, ok := buckets[key]
		if !ok {
			b = &ReturnsBucket{Period: key}
			buckets[key] = b
		}
		return b
	}
	countOrders := include == "orders" || include == "both"
	countOutcomes := include == "outcomes" || include == "both"

	for _, o := range orders {
		b := get(o.CreatedAt)
		b.OrdersTotal++
		if o.Status == cancelled {
			b.OrdersCancelled++
			if countOrders {
				b.ReturnsTotal++
			}
		}
	}
	if countOutcomes {
		for _, o := range cancelledOutcomes {
			get(o.CreatedAt).ReturnsTotal++
		}
	}

	totals := ReturnsBucket{}
	out := make([]ReturnsBucket, 0, len(buckets))
	for _, k := range sortedKeys(buckets) {
		b := buckets[k]
		b.CancelRatePct = types.ShareInt(int64(b.OrdersCancelled), int64(b.OrdersTotal))
		b.ReturnsSharePct = types.ShareInt(int64(b.ReturnsTotal), int64(b.OrdersTotal))
		totals.OrdersTotal += b.OrdersTotal
		totals.OrdersCancelled += b.OrdersCancelled
		totals.ReturnsTotal += b.ReturnsTotal
		out = append(out, *b)
	}
	totals.CancelRatePct = types.ShareInt(int64(totals.OrdersCancelled), int64(totals.OrdersTotal))
	totals.ReturnsSharePct = types.ShareInt(int64(totals.ReturnsTotal), int64(totals.OrdersTotal))
	return out, totals
}

// --- Stock ---

type stockAcc struct {
	id    *id.ID
	name  string
	qty   int64
	value types.Money
}

func (a *stockAcc) add(r StockRow) {
	a.qty += r.Quantity
	a.value = a.value.Add(types.LineAmount(r.Quantity, r.Price))
}

func (a *stockAcc) render(scale int32) StockGroup {
	var avg *types.Money
	if a.qty != 0 {
		v := types.RoundMoney(a.value.Div(decimal.NewFromInt(a.qty)), scale)
		avg = &v
	}
	return StockGroup{
		ID:       a.id,
		Name:     a.name,
		Qty:      a.qty,
		Value:    types.RoundMoney(a.value, scale),
		AvgPrice: avg,
	}
}

func centralStock(rows []StockRow, groupBy string, scale int32) ([]StockGroup, StockGroup) {
	keyFn := func(r StockRow) (*id.ID, string) {
		pid := r.ProductID
		return &pid, r.ProductName
	}
	switch groupBy {
	case "category":
		keyFn = func(r StockRow) (*id.ID, string) { return r.CategoryID, r.CategoryName }
	case "dealer":
		keyFn = func(r StockRow) (*id.ID, string) { return r.ResponsibleID, r.ResponsibleName }
	}

	index := make(map[string]*stockAcc)
	var groups []*stockAcc
	all := &stockAcc{value: types.Zero()}
	for _, r := range rows {
		gid, name := keyFn(r)
		key := ""
		if gid != nil {
			key = gid.String()
		}
		a, ok := index[key]
		if !ok {
			a = &stockAcc{id: gid, name: name, value: types.Zero()}
			index[key] = a
			groups = append(groups, a)
		}
		a.add(r)
		all.add(r)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if c := groups[i].value.Cmp(groups[j].value); c != 0 {
			return c > 0
		}
		return groups[i].name < groups[j].name
	})

	out := make([]StockGroup, len(groups))
	for i, a := range groups {
		out[i] = a.render(scale)
	}
	return out, all.render(scale)
}

func warehouseDealer(rows []StockRow, scale int32) []WarehouseDealerRow {
	index := make(map[string]*WarehouseDealerRow)
	var out []*WarehouseDealerRow
	for _, r := range rows {
		key := r.WarehouseID.String()
		if r.ResponsibleID != nil {
			key += ":" + r.ResponsibleID.String()
		}
		row, ok := index[key]
		if !ok {
			row = &WarehouseDealerRow{
				WarehouseID:   r.WarehouseID,
				WarehouseName: r.WarehouseName,
				DealerID:      r.ResponsibleID,
				DealerName:    r.ResponsibleName,
				Value:         types.Zero(),
			}
			index[key] = row
			out = append(out, row)
		}
		row.Qty += r.Quantity
		row.Value = row.Value.Add(types.LineAmount(r.Quantity, r.Price))
		if r.Quantity != 0 {
			row.Positions++
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].WarehouseName != out[j].WarehouseName {
			return out[i].WarehouseName < out[j].WarehouseName
		}
		return out[i].DealerName < out[j].DealerName
	})

	res := make([]WarehouseDealerRow, len(out))
	for i, r := range out {
		r.Value = types.RoundMoney(r.Value, scale)
		res[i] = *r
	}
	return res
}

// --- Forecast ---

type forecastInput struct {
	stock     []StockRow
	used      []Line // finished outcome lines inside the window
	incoming  []Line // lines of incomes not yet finished
	window    int
	threshold int
	today     time.Time
	onlyShort bool
}

func forecast(in forecastInput) []ShortageRow {
	type key struct{ w, p id.ID }
	type item struct {
		row  ShortageRow
		used int64
	}
	items := make(map[key]*item)
	names := make(map[key]ShortageRow)

	for _, r := range in.stock {
		names[key{r.WarehouseID, r.ProductID}] = ShortageRow{
			WarehouseID: r.WarehouseID, WarehouseName: r.WarehouseName,
			ProductID: r.ProductID, ProductName: r.ProductName,
			Stock: r.Quantity,
		}
	}
	for _, l := range in.used {
		if l.WarehouseID == nil {
			continue
		}
		k := key{*l.WarehouseID, l.ProductID}
		it, ok := items[k]
		if !ok {
			row, known := names[k]
			if !known {
				row = ShortageRow{
					WarehouseID: *l.WarehouseID, WarehouseName: l.WarehouseName,
					ProductID: l.ProductID, ProductName: l.ProductName,
				}
			}
			it = &item{row: row}
			items[k] = it
		}
		it.used += l.Count
	}
	for _, l := range in.incoming {
		if l.WarehouseID == nil {
			continue
		}
		if it, ok := items[key{*l.WarehouseID, l.ProductID}]; ok {
			it.row.Incoming += l.Count
		}
	}

	out := make([]ShortageRow, 0, len(items))
	for _, it := range items {
		if it.used <= 0 {
			continue
		}
		row := it.row
		row.Used = it.used
		rate := float64(it.used) / float64(in.window)
		available := float64(row.Stock + row.Incoming)
		cover := available / rate

		row.DailyRate = types.Round2(rate)
		row.DaysOfCover = types.Round2(cover)
		row.IsShort = cover < float64(in.threshold)
		if need := math.Ceil(float64(in.threshold)*rate - available - 1e-9); need > 0 {
			row.RecommendedQty = int64(need)
		}
		depletion := 0
		if cover > 0 {
			depletion = int(math.Ceil(cover - 1e-9))
		}
		row.DepletionDate = in.today.AddDate(0, 0, depletion).Format(isoDate)

		if in.onlyShort && !row.IsShort {
			continue
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DaysOfCover != out[j].DaysOfCover {
			return out[i].DaysOfCover < out[j].DaysOfCover
		}
		if out[i].WarehouseName != out[j].WarehouseName {
			return out[i].WarehouseName < out[j].WarehouseName
		}
		return out[i].ProductName < out[j].ProductName
	})
	return out
}

// --- Plans ---

type planInput struct {
	items     []PlanItem
	actual    []Line
	fromYM    int
	toYM      int
	dimension string
	perMonth  bool
	loc       *time.Location
	scale     int32
}

type planAcc struct {
	ym     int
	id     *id.ID
	name   string
	plan   types.Money
	actual types.Money
}

func planRows(in planInput) ([]PlanRow, PlanRow) {
	index := make(map[string]*planAcc)
	var accs []*planAcc
	get := func(ym int, gid *id.ID, name string) *planAcc {
		if !in.perMonth {
			ym = 0
		}
		key := ""
		if gid != nil {
			key = gid.String()
		}
		mapKey := key + "@" + strconv.Itoa(ym)
		a, ok := index[mapKey]
		if !ok {
			a = &planAcc{ym: ym, id: gid, name: name, plan: types.Zero(), actual: types.Zero()}
			index[mapKey] = a
			accs = append(accs, a)
		}
		if a.name == "" {
			a.name = name
		}
		return a
	}
	inRange := func(ym int) bool { return ym >= in.fromYM && ym <= in.toYM }
	withPlan := in.dimension != "warehouse"

	if withPlan {
		for _, it := range in.items {
			ym := it.CreatedAt.In(in.loc).Year()*12 + it.Period - 1
			if !inRange(ym) {
				continue
			}
			var gid *id.ID
			name := ""
			if in.dimension == "dealer" {
				d := it.DealerID
				gid, name = &d, it.DealerName
			}
			a := get(ym, gid, name)
			a.plan = a.plan.Add(types.LineAmount(it.Count, it.ProductPrice))
		}
	}
	for _, l := range in.actual {
		ym := yearMonth(l.CreatedAt, in.loc)
		if !inRange(ym) {
			continue
		}
		var gid *id.ID
		name := ""
		switch in.dimension {
		case "dealer":
			gid, name = l.ClientID, l.ClientName
		case "warehouse":
			gid, name = l.WarehouseID, l.WarehouseName
		}
		a := get(ym, gid, name)
		a.actual = a.actual.Add(l.Amount())
	}

	sort.SliceStable(accs, func(i, j int) bool {
		if accs[i].ym != accs[j].ym {
			return accs[i].ym < accs[j].ym
		}
		return accs[i].name < accs[j].name
	})

	render := func(a *planAcc) PlanRow {
		row := PlanRow{Key: a.id, Name: a.name, Actual: types.RoundMoney(a.actual, in.scale)}
		if in.perMonth && a.ym > 0 {
			row.Year = a.ym / 12
			row.Month = a.ym%12 + 1
		}
		if withPlan {
			row.Plan = roundedPtr(a.plan, in.scale)
			row.Delta = roundedPtr(a.actual.Sub(a.plan), in.scale)
			row.AchievementPct = types.Share(a.actual, a.plan)
		}
		return row
	}

	all := &planAcc{plan: types.Zero(), actual: types.Zero()}
	out := make([]PlanRow, len(accs))
	for i, a := range accs {
		out[i] = render(a)
		all.plan = all.plan.Add(a.plan)
		all.actual = all.actual.Add(a.actual)
	}
	totals := render(all)
	totals.Name = "total"
	return out, totals
}
