package rabbitmq

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetMailQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "mail.password-reset", RoutingKey: "password-reset"},
	}
}
