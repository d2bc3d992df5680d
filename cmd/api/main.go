package main

// @title Mock Interview APIs
// @version 1.0
// @description Question generation, answer evaluation, code grading and interview sessions.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:9089
// @BasePath /
// @schemes http
import (
	protocol "mock-interview/protocal"

	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Fatalln(err)
	}
}
