package config

import (
	"fmt"
	"log"
)

// RabbitMQConf holds broker configuration shared by the publisher and the
// stats consumer. URL, when set, wins over the host/port/user/password parts.
type RabbitMQConf struct {
	URL            string `env:"RABBITMQ_URL" envDefault:""`
	Host           string `env:"RABBITMQ_HOST" envDefault:"localhost"`
	Port           string `env:"RABBITMQ_PORT" envDefault:"5672"`
	User           string `env:"RABBITMQ_USER" envDefault:"guest"`
	Password       string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	Exchange       string `env:"RABBITMQ_EXCHANGE" envDefault:"events"`
	Queue          string `env:"RABBITMQ_STATS_QUEUE" envDefault:"stats_events"`
	BindingKey     string `env:"RABBITMQ_BINDING_KEY" envDefault:"collection.*"`
	PrefetchCount  int    `env:"RABBITMQ_PREFETCH_COUNT" envDefault:"10"`
	ReconnectDelay int    `env:"RABBITMQ_RECONNECT_DELAY_SECONDS" envDefault:"3"`
}

// GetRabbitMQURL constructs the RabbitMQ connection URL
func (r *RabbitMQConf) GetRabbitMQURL() string {
	if r.URL != "" {
		return r.URL
	}
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		r.User,
		r.Password,
		r.Host,
		r.Port,
	)
}

// ValidateRabbitMQConfig validates RabbitMQ configuration
func (r *RabbitMQConf) ValidateRabbitMQConfig() error {
	if r.URL == "" {
		requiredFields := map[string]string{
			"Host":     r.Host,
			"Port":     r.Port,
			"User":     r.User,
			"Password": r.Password,
		}

		for field, value := range requiredFields {
			if value == "" {
				return fmt.Errorf("RabbitMQ configuration error: %s is required", field)
			}
		}
	}

	if r.Exchange == "" {
		return fmt.Errorf("RabbitMQ configuration error: Exchange is required")
	}

	if r.Queue == "" {
		return fmt.Errorf("RabbitMQ configuration error: Queue is required")
	}

	if r.BindingKey == "" {
		return fmt.Errorf("RabbitMQ configuration error: BindingKey is required")
	}

	if r.PrefetchCount <= 0 {
		log.Println("⚠️  Warning: PrefetchCount should be > 0, defaulting to 10")
		r.PrefetchCount = 10
	}

	if r.ReconnectDelay <= 0 {
		log.Println("⚠️  Warning: ReconnectDelay should be > 0, defaulting to 3")
		r.ReconnectDelay = 3
	}

	return nil
}
