package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/talkincode/supermarkt/internal/app"
	"github.com/talkincode/supermarkt/internal/goods"
	"github.com/talkincode/supermarkt/internal/report"
)

const menuText = `
Please choose an option:
1. Add a product
2. Show all products
3. Simulate quality over days
4. Import products from CSV
5. Import products from SQL table
6. Exit
`

const menuDateLayout = "02-01-2006"

// errInputClosed ends the menu when the input runs out.
var errInputClosed = errors.New("input closed")

// Menu is the interactive shelf console.
type Menu struct {
	app app.AppContext
	in  *bufio.Scanner
	out io.Writer
}

func NewMenu(a app.AppContext, in io.Reader, out io.Writer) *Menu {
	return &Menu{app: a, in: bufio.NewScanner(in), out: out}
}

// Run shows the menu until the user exits or the input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.print(menuText)
		choice, err := m.ask("Enter your choice: ")
		if err != nil {
			return nil
		}
		switch choice {
		case "1":
			err = m.addProduct()
		case "2":
			m.showProducts()
		case "3":
			err = m.simulate(ctx)
		case "4":
			err = m.importCSV(ctx)
		case "5":
			err = m.importSQL(ctx)
		case "6":
			m.println("Goodbye!")
			return nil
		default:
			m.println("Invalid option. Please try again.")
		}
		if errors.Is(err, errInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) print(s string) {
	_, _ = io.WriteString(m.out, s)
}

func (m *Menu) println(s string) {
	_, _ = io.WriteString(m.out, s+"\n")
}

func (m *Menu) ask(prompt string) (string, error) {
	m.print(prompt)
	if !m.in.Scan() {
		return "", errInputClosed
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// askUntil repeats prompt until parse accepts the answer.
func (m *Menu) askUntil(prompt, retry string, parse func(string) bool) error {
	for {
		answer, err := m.ask(prompt)
		if err != nil {
			return err
		}
		if parse(answer) {
			return nil
		}
		m.println(retry)
	}
}

func (m *Menu) addProduct() error {
	cats := goods.Categories()
	m.println("Choose a product type:")
	for i, c := range cats {
		m.println(fmt.Sprintf("%d. %s", i+1, c.Label))
	}
	var category goods.Category
	err := m.askUntil("Enter type number: ", "Invalid type. Please try again.", func(s string) bool {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > len(cats) {
			return false
		}
		category = cats[n-1].Category
		return true
	})
	if err != nil {
		return err
	}

	var id string
	err = m.askUntil("Enter product ID: ", "Product ID must not be empty.", func(s string) bool {
		id = s
		return s != ""
	})
	if err != nil {
		return err
	}
	if m.app.Inventory().Has(id) {
		m.println("A product with this ID already exists.")
		return nil
	}

	name, err := m.ask("Enter product name: ")
	if err != nil {
		return err
	}

	var quality float64
	err = m.askUntil("Enter quality (0-100): ", "Invalid quality. Please enter a whole number between 0 and 100.", func(s string) bool {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 100 {
			return false
		}
		quality = float64(n)
		return true
	})
	if err != nil {
		return err
	}

	var expiry goods.Date
	err = m.askUntil("Enter expiry date (dd-mm-yyyy) or 'none': ", "Invalid date. Please use dd-mm-yyyy or 'none'.", func(s string) bool {
		if strings.EqualFold(s, "none") {
			expiry = goods.Date{}
			return true
		}
		t, err := time.Parse(menuDateLayout, s)
		if err != nil {
			return false
		}
		expiry = goods.DateOf(t)
		return true
	})
	if err != nil {
		return err
	}

	var price float64
	err = m.askUntil("Enter base price: ", "Invalid price. Please enter a number of at least 0.", func(s string) bool {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return false
		}
		price = v
		return true
	})
	if err != nil {
		return err
	}

	params := goods.Params{
		Category:  category,
		ID:        id,
		Name:      name,
		Quality:   quality,
		Expiry:    expiry,
		BasePrice: price,
		Today:     m.app.Today(),
	}
	if category == goods.CategoryMeat {
		if err := m.askMeat(&params); err != nil {
			return err
		}
	}

	p, err := goods.New(params)
	if err != nil {
		m.println("Product could not be created: " + err.Error())
		return nil
	}
	if err := m.app.Inventory().Add(p); err != nil {
		m.println("Product could not be added: " + err.Error())
		return nil
	}
	m.println("Product added.")
	return nil
}

func (m *Menu) askMeat(params *goods.Params) error {
	kinds := goods.MeatKinds()
	m.println("Choose a meat kind:")
	for i, k := range kinds {
		m.println(fmt.Sprintf("%d. %s", i+1, k))
	}
	err := m.askUntil("Enter meat kind number: ", "Invalid meat kind. Please try again.", func(s string) bool {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > len(kinds) {
			return false
		}
		params.MeatKind = kinds[n-1]
		return true
	})
	if err != nil {
		return err
	}
	return m.askUntil("Is it vacuum packed? (1. Yes, 2. No): ", "Please enter 1 or 2.", func(s string) bool {
		switch s {
		case "1":
			params.VacuumPacked = true
		case "2":
			params.VacuumPacked = false
		default:
			return false
		}
		return true
	})
}

func (m *Menu) showProducts() {
	products := m.app.Inventory().List()
	if len(products) == 0 {
		m.println("No products in the inventory.")
		return
	}
	for _, p := range products {
		m.println(p.Describe())
	}
}

func (m *Menu) simulate(ctx context.Context) error {
	if m.app.Inventory().Len() == 0 {
		m.println("No products added yet.")
		return nil
	}
	var days int
	err := m.askUntil("Enter number of days to simulate: ", "Invalid number of days. Please enter a whole number of at least 1.", func(s string) bool {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return false
		}
		days = n
		return true
	})
	if err != nil {
		return err
	}
	results, err := m.app.Simulate(ctx, days)
	if err != nil {
		return err
	}
	return report.WriteText(m.out, results)
}

func (m *Menu) importCSV(ctx context.Context) error {
	path, err := m.ask("Enter CSV file path: ")
	if err != nil {
		return err
	}
	added, err := m.app.ImportCSV(ctx, path)
	m.printImport(added, err)
	return nil
}

func (m *Menu) importSQL(ctx context.Context) error {
	table, err := m.ask("Enter table name (empty for default): ")
	if err != nil {
		return err
	}
	added, err := m.app.ImportSQL(ctx, table)
	m.printImport(added, err)
	return nil
}

func (m *Menu) printImport(added int, err error) {
	for _, e := range multierr.Errors(err) {
		m.println("Error: " + e.Error())
	}
	m.println(fmt.Sprintf("Imported %d products.", added))
}
