package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cli/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gksrikar/portfolio/internal/contact"
	"github.com/gksrikar/portfolio/internal/content"
	"github.com/gksrikar/portfolio/internal/render"
)

var contactFlags struct {
	name      string
	from      string
	message   string
	site      string
	endpoint  string
	emailLink string
	open      bool
}

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Sends a message through the site's contact endpoint",
	Long: `The contact command posts a message to the contact endpoint. When the
endpoint is unreachable or rejects the message it prints a mailto link
addressed to the site owner instead, and opens it in the default mail
client when --open is set.`,
	Example: `  portfolio contact --site https://example.com --name Ada --from ada@example.com --message "Hello"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		client := &http.Client{Timeout: 15 * time.Second}

		endpoint, err := resolveEndpoint(contactFlags.site, contactFlags.endpoint)
		if err != nil {
			return err
		}

		submitter := &contact.Submitter{
			Endpoint:  endpoint,
			EmailLink: emailLink(cmd.Context(), client),
			Client:    client,
			OnStatus: func(s contact.Status) {
				fmt.Fprintln(out, s)
			},
			Navigate: func(uri string) error {
				fmt.Fprintln(out, uri)
				if contactFlags.open {
					return browser.OpenURL(uri)
				}

				return nil
			},
		}

		outcome := submitter.Submit(cmd.Context(), contact.Submission{
			Name:    contactFlags.name,
			From:    contactFlags.from,
			Message: contactFlags.message,
		})
		if !outcome.Sent {
			log.Warn("contact endpoint unavailable, fell back to email",
				zap.String("endpoint", endpoint),
				zap.Error(outcome.Err),
			)
		}

		return nil
	},
}

func init() {
	f := contactCmd.Flags()
	f.StringVar(&contactFlags.name, "name", "", "your name")
	f.StringVar(&contactFlags.from, "from", "", "your email address")
	f.StringVar(&contactFlags.message, "message", "", "the message")
	f.StringVar(&contactFlags.site, "site", "", "base URL of the site; relative endpoints are resolved against it")
	f.StringVar(&contactFlags.endpoint, "endpoint", "", "contact endpoint (default from config)")
	f.StringVar(&contactFlags.emailLink, "email-link", "", "mailto link used for the fallback (default from the site profile)")
	f.BoolVar(&contactFlags.open, "open", false, "open the fallback link in the default mail client")

	rootCmd.AddCommand(contactCmd)
}

// resolveEndpoint joins a relative endpoint onto the site URL. A relative
// endpoint without a site cannot be posted to.
func resolveEndpoint(site, endpoint string) (string, error) {
	if endpoint == "" {
		endpoint = appConfig.Contact.Endpoint
	}

	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if ref.IsAbs() {
		return endpoint, nil
	}
	if site == "" {
		return "", fmt.Errorf("endpoint %q is relative: set --site or pass an absolute --endpoint", endpoint)
	}

	base, err := url.Parse(site)
	if err != nil {
		return "", fmt.Errorf("parse site %q: %w", site, err)
	}

	return base.ResolveReference(ref).String(), nil
}

// emailLink picks the fallback address the way the page does: the flag, then
// the site profile, then the configured address.
func emailLink(ctx context.Context, client *http.Client) string {
	if contactFlags.emailLink != "" {
		return contactFlags.emailLink
	}

	var profile *content.Profile
	if contactFlags.site != "" {
		p, err := content.LoadProfile(ctx, content.NewHTTPSource(contactFlags.site, client))
		if err != nil {
			log.Debug("site profile unavailable", zap.Error(err))
		}
		profile = p
	}

	return render.EmailHref(appConfig.Contact.FallbackEmail, profile)
}
