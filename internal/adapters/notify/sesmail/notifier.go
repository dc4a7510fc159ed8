package sesmail

import (
	"context"
	"errors"
	"strings"

	"animal-shelter/internal/platform/config"
	"animal-shelter/internal/ports/notify"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SendEmailAPI es el subconjunto de *ses.Client que usamos.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type Notifier struct {
	client SendEmailAPI
	from   string
}

// New carga credenciales con la cadena por defecto de AWS.
func New(ctx context.Context, cfg config.NotifyConfig) (*Notifier, error) {
	from := strings.TrimSpace(cfg.FromEmail)
	if from == "" {
		return nil, errors.New("sesmail: from email required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}
	return NewWithClient(ses.NewFromConfig(awsCfg), from), nil
}

func NewWithClient(client SendEmailAPI, from string) *Notifier {
	return &Notifier{client: client, from: from}
}

func (n *Notifier) Notify(ctx context.Context, msg notify.Message) error {
	_, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Body), Charset: aws.String("UTF-8")},
			},
		},
	})
	return err
}

var _ notify.Notifier = (*Notifier)(nil)
