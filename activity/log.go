package activity

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "activity")
