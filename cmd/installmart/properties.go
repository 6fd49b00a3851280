package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/installmart/internal/catalog"
	"github.com/Veraticus/installmart/internal/cli"
	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/model"
	"github.com/Veraticus/installmart/internal/property"
)

func propertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Browse property listings",
	}

	cmd.AddCommand(propertiesListCmd())
	cmd.AddCommand(propertiesShowCmd())

	return cmd
}

func propertiesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List property listings",
		Long: `List every property listing: developer projects, individual listings
and older flat listings alike.

Prices are the sale price, the monthly rent or the monthly installment
depending on how the property is offered.`,
		RunE: runPropertiesList,
	}

	cmd.Flags().StringP("query", "q", "", "match title, location or project name")
	cmd.Flags().String("city", "", "only this city")
	cmd.Flags().String("type", "", "transaction type (sale, rent, installment)")
	cmd.Flags().Float64("min-price", 0, "minimum price")
	cmd.Flags().Float64("max-price", 0, "maximum price")
	cmd.Flags().Int("bedrooms", 0, "minimum number of bedrooms")

	return cmd
}

func runPropertiesList(cmd *cobra.Command, _ []string) error {
	var f catalog.PropertyFilter
	f.Query, _ = cmd.Flags().GetString("query")
	f.City, _ = cmd.Flags().GetString("city")
	f.MinPrice, _ = cmd.Flags().GetFloat64("min-price")
	f.MaxPrice, _ = cmd.Flags().GetFloat64("max-price")
	f.MinBedrooms, _ = cmd.Flags().GetInt("bedrooms")

	txType, _ := cmd.Flags().GetString("type")
	parsed, err := parseTransactionType(txType)
	if err != nil {
		return err
	}
	f.TransactionType = parsed

	return withEnv(cmd, func(ctx context.Context, e *env) error {
		stop := loading(cmd, "Loading properties")
		res := catalog.New(e.client, e.settings).Properties(ctx)
		stop()

		out := cmd.OutOrStdout()
		warnDegraded(out, "properties", res)

		props := catalog.FilterProperties(res.Items, f)
		if len(props) == 0 {
			fmt.Fprintln(out, cli.InfoStyle.Render("No properties found."))
			return nil
		}

		fmt.Fprintln(out, cli.FormatTitleWithIcon(cli.HouseIcon, fmt.Sprintf("Properties (%d)", len(props))))
		t := newTable(out, "ID", "Title", "City", "Type", "Beds", "Price")
		for i := range props {
			p := &props[i]
			t.row(
				p.ID,
				truncate(property.Title(p), 36),
				orDash(property.City(p)),
				orDash(property.Purpose(p)),
				countLabel(property.Bedrooms(p)),
				priceLabel(p),
			)
		}
		t.flush()
		return nil
	})
}

// parseTransactionType accepts the transaction type case-insensitively.
func parseTransactionType(s string) (model.TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "sale", "buy":
		return model.TransactionSale, nil
	case "rent":
		return model.TransactionRent, nil
	case "installment", "installments":
		return model.TransactionInstallment, nil
	default:
		return "", common.NewUserError(
			fmt.Sprintf("Unknown transaction type %q, expected sale, rent or installment", s),
			common.ErrInvalidPayload)
	}
}

// priceLabel shows what the buyer pays under the listing's transaction.
func priceLabel(p *model.Property) string {
	if rent := property.MonthlyRent(p); rent > 0 {
		return cli.FormatPrice(rent) + "/mo"
	}
	if monthly := property.MonthlyInstallment(p); monthly > 0 && property.Price(p) == 0 {
		return cli.FormatPrice(monthly) + "/mo"
	}
	if r := property.PriceRange(p); r != nil && r.Max > r.Min {
		return cli.FormatPrice(r.Min) + " – " + cli.FormatPrice(r.Max)
	}
	return cli.FormatPrice(property.Price(p))
}

func countLabel(n int) string {
	if n <= 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func propertiesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <property-id>",
		Short: "Show one property listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				stop := loading(cmd, "Loading property")
				p, err := catalog.New(e.client, e.settings).PropertyByID(ctx, args[0])
				stop()
				if err != nil {
					return err
				}
				if p == nil {
					return common.NewUserError(fmt.Sprintf("No property with ID %q", args[0]), common.ErrNotFound)
				}
				writeProperty(cmd.OutOrStdout(), p)
				return nil
			})
		},
	}
}

func writeProperty(out io.Writer, p *model.Property) {
	fmt.Fprintln(out, cli.FormatTitleWithIcon(cli.HouseIcon, property.Title(p)))
	field(out, "ID", p.ID)
	field(out, "Listing", p.Kind().String())
	field(out, "Project", property.ProjectName(p))
	field(out, "Developer", property.Developer(p))
	field(out, "Completion", property.CompletionStatus(p))
	field(out, "Type", property.PropertyType(p))
	field(out, "Purpose", property.Purpose(p))
	field(out, "Location", property.Location(p))
	field(out, "Area", property.AreaSize(p))
	if n := property.Bedrooms(p); n > 0 {
		field(out, "Bedrooms", strconv.Itoa(n))
	}
	if n := property.Bathrooms(p); n > 0 {
		field(out, "Bathrooms", strconv.Itoa(n))
	}
	field(out, "Price", priceLabel(p))

	if tx := property.Transaction(p); tx != nil {
		if tx.DownPayment > 0 {
			field(out, "Down payment", cli.FormatPrice(tx.DownPayment))
		}
		if tx.InstallmentDuration > 0 {
			field(out, "Installments", fmt.Sprintf("%d months", tx.InstallmentDuration))
		}
		if tx.SecurityDeposit > 0 {
			field(out, "Security deposit", cli.FormatPrice(tx.SecurityDeposit))
		}
		if tx.AdvanceAmount > 0 {
			field(out, "Advance", cli.FormatPrice(tx.AdvanceAmount))
		}
	}

	if d := property.Description(p); d != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, d)
	}
	fmt.Fprintln(out)
	list(out, "Highlights", property.Highlights(p))
	list(out, "Amenities", property.Amenities(p))
	list(out, "Utilities", property.Utilities(p))
	list(out, "Nearby", property.NearbyLandmarks(p))
	list(out, "Images", property.Images(p))

	if c := property.Contact(p); c != nil {
		fmt.Fprintln(out)
		field(out, "Contact", c.Name)
		field(out, "Phone", c.Phone)
		field(out, "WhatsApp", c.WhatsApp)
		field(out, "Email", c.Email)
	}
}
