package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/jasonlvhit/gocron"
	"github.com/peterbourgon/ff"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/uavaustin/geo-distance/api"
	"github.com/uavaustin/geo-distance/geo"
	"github.com/uavaustin/geo-distance/sim"
	"github.com/uavaustin/geo-distance/wind"
	"github.com/uavaustin/geo-distance/xmpp"

	_ "net/http/pprof"
)

func main() {

	fs := flag.NewFlagSet("geo-distance", flag.ExitOnError)
	var (
		port       = fs.Int("port", 8888, "http listen port")
		debug      = fs.Bool("debug", false, "debug logging")
		cpuprofile = fs.Bool("cpuprofile", false, "profile the process")
		gribDir    = fs.String("grib-dir", "", "directory with GRIB2 wind forecasts")

		xmppHost     = fs.String("xmpp-host", "", "")
		xmppJid      = fs.String("xmpp-jid", "", "")
		xmppPassword = fs.String("xmpp-password", "", "")
		xmppTo       = fs.String("xmpp-to", "", "")

		simulate  = fs.Bool("sim", false, "run the simulated vehicle")
		simLat    = fs.Float64("sim-lat", 30.2849, "vehicle start latitude, degrees")
		simLon    = fs.Float64("sim-lon", -97.7341, "vehicle start longitude, degrees")
		simAlt    = fs.Float64("sim-alt", 300, "vehicle start altitude, meters")
		simSpeed  = fs.Float64("sim-speed", 30, "vehicle airspeed, m/s")
		simRadius = fs.Float64("sim-radius", 100, "vehicle turning radius, meters")
	)
	ff.Parse(fs, os.Args[1:], ff.WithEnvVarNoPrefix())

	if *debug {
		log.SetLevel(log.DebugLevel)
	}
	if *cpuprofile {
		defer profile.Start().Stop()
	}

	x := xmpp.Xmpp{Config: xmpp.Config{
		Host:     *xmppHost,
		Jid:      *xmppJid,
		Password: *xmppPassword,
		To:       *xmppTo,
	}}

	scheduler := gocron.NewScheduler()

	var winds *wind.Store
	if *gribDir != "" {
		log.Info("Load wind fields")
		winds = wind.NewStore(*gribDir)

		job := scheduler.Every(15).Seconds()
		job.Do(winds.Merge)
	}

	var vehicle *sim.Simulator
	if *simulate {
		var err error
		vehicle, err = sim.New(sim.Config{
			Start: geo.Location{
				Lat: geo.Radians(*simLat),
				Lon: geo.Radians(*simLon),
				Alt: *simAlt,
			},
			Speed:         *simSpeed,
			TurningRadius: *simRadius,
			Winds:         winds,
			Notifier:      x,
		})
		if err != nil {
			log.WithError(err).Fatal("Error creating simulator")
		}

		go vehicle.Run(context.Background())

		job := scheduler.Every(5).Minutes()
		job.Do(func() {
			if err := x.Send(vehicle.Progress()); err != nil {
				log.WithError(err).Debug("Error sending progress notification")
			}
		})
	}

	go scheduler.Start()

	router := api.InitServer(winds, vehicle)

	log.Infof("Start server on port %d", *port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", *port),
		handlers.CombinedLoggingHandler(os.Stdout, handlers.RecoveryHandler()(router))))
}
