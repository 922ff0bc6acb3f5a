package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/pkg/publish"
)

func publishCmd() *cobra.Command {
	var (
		bucket     string
		key        string
		region     string
		endpoint   string
		configPath string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the stylesheet to S3",
		Long: `Upload the tooltip stylesheet to an S3 bucket.

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
AWS_SESSION_TOKEN. Flags override the "publish" section of tooltip.json.

Examples:
  tooltip publish --bucket=my-assets
  tooltip publish --bucket=assets --key=ui/tooltip.css --region=eu-west-1
  tooltip publish --bucket=local --endpoint=http://localhost:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			opts := publish.Options{
				Bucket:   firstNonEmpty(bucket, cfg.Publish.Bucket),
				Key:      firstNonEmpty(key, cfg.Publish.Key),
				Region:   firstNonEmpty(region, cfg.Publish.Region),
				Endpoint: firstNonEmpty(endpoint, cfg.Publish.Endpoint),
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			res, err := publish.New(publish.NewClient(opts)).Stylesheet(ctx, opts)
			if err != nil {
				return err
			}
			success("Published %d bytes", res.Size)
			info("URL:    %s", res.URL)
			info("SHA256: %s", res.SHA256)
			return nil
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "S3 bucket (required unless set in tooltip.json)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "Object key (default \"tooltip.css\")")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region (default \"us-east-1\")")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Custom S3 endpoint, e.g. MinIO")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to tooltip.json (default: working directory)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Upload timeout")

	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
